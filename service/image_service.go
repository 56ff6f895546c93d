package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// ImageTarget is the record an uploaded image is attached to
type ImageTarget interface {
	SetImage(ctx context.Context, id, url, path string) (previousPath string, err error)
}

// ImageService validates, optimizes and stores room and add-on pictures
type ImageService struct {
	store ImageStoreInterface
}

// NewImageService creates a new ImageService
func NewImageService(store ImageStoreInterface) *ImageService {
	return &ImageService{store: store}
}

// Replace uploads data as the image of the record id and deletes the image it replaces.
// Validation happens before any remote call. The old object is deleted only after the
// new one is stored and referenced.
func (s *ImageService) Replace(ctx context.Context, target ImageTarget, kind, id string, data []byte) (*StoredImage, error) {
	log.Printf("📥 ImageService.Replace: %s=%s size=%d", kind, id, len(data))

	if _, err := ValidateImage(data); err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnsupportedImageType, err)
	}

	name := fmt.Sprintf("%s_%s.jpg", kind, id)
	stored, err := s.store.Upload(ctx, name, optimized, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	previous, err := target.SetImage(ctx, id, stored.URL, stored.Path)
	if err != nil {
		if delErr := s.store.Delete(ctx, stored.Path); delErr != nil {
			log.Printf("⚠️  ImageService.Replace: orphan upload %s: %v", stored.Path, delErr)
		}
		return nil, err
	}

	if previous != "" && previous != stored.Path {
		if err := s.store.Delete(ctx, previous); err != nil {
			log.Printf("⚠️  ImageService.Replace: could not delete previous image %s: %v", previous, err)
		}
	}

	log.Printf("✅ ImageService.Replace: %s=%s path=%s", kind, id, stored.Path)
	return stored, nil
}

// Remove deletes a stored object, ignoring an empty path
func (s *ImageService) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Delete(ctx, path); err != nil {
		log.Printf("⚠️  ImageService.Remove: %s: %v", path, err)
	}
}

// Clear detaches the image of the record id and deletes the stored object
func (s *ImageService) Clear(ctx context.Context, target ImageTarget, id string) error {
	previous, err := target.SetImage(ctx, id, "", "")
	if err != nil {
		return err
	}
	s.Remove(ctx, previous)
	return nil
}
