package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

const (
	// MaxImageBytes is the largest accepted upload
	MaxImageBytes = 5 << 20

	maxImageDim  = 1600
	imageQuality = 80
)

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImage checks size and sniffed content type. It returns the detected type.
func ValidateImage(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", models.ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if !acceptedImageTypes[contentType] {
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedImageType, contentType)
	}
	return contentType, nil
}

// OptimizeImage converts an image to JPEG, shrinking it so neither side exceeds maxImageDim
func OptimizeImage(imageData []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resizedImg image.Image = img
	if width > maxImageDim || height > maxImageDim {
		// imaging keeps the aspect ratio when one side is 0
		if width >= height {
			resizedImg = imaging.Resize(img, maxImageDim, 0, imaging.Lanczos)
		} else {
			resizedImg = imaging.Resize(img, 0, maxImageDim, imaging.Lanczos)
		}
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, resizedImg.Bounds().Dx(), resizedImg.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: imageQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("📸 Image optimized: format=%s, output_size=%d bytes", format, buf.Len())
	return buf.Bytes(), nil
}
