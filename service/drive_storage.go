package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// StoredImage is an uploaded object: Path deletes it, URL serves it
type StoredImage struct {
	Path string
	URL  string
}

// ImageStoreInterface defines the contract for remote image storage
type ImageStoreInterface interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (*StoredImage, error)
	Delete(ctx context.Context, path string) error
}

// DriveStorage stores images in a Google Drive folder
type DriveStorage struct {
	client   *drive.Service
	folderID string
}

// NewDriveStorage creates a new DriveStorage instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveStorage(ctx context.Context, credentialsPath, folderID string) (*DriveStorage, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStorage{
		client:   driveService,
		folderID: folderID,
	}, nil
}

var _ ImageStoreInterface = (*DriveStorage)(nil)

// Upload creates the file in the folder and shares it for anonymous reading
func (ds *DriveStorage) Upload(ctx context.Context, name string, data []byte, contentType string) (*StoredImage, error) {
	file := &drive.File{
		Name:     name,
		MimeType: contentType,
	}
	if ds.folderID != "" {
		file.Parents = []string{ds.folderID}
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := ds.client.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		log.Printf("⚠️  DriveStorage: could not share %s: %v", created.Id, err)
	}

	return &StoredImage{
		Path: created.Id,
		URL:  fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id),
	}, nil
}

// Delete removes a file. A file that is already gone is not an error.
func (ds *DriveStorage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := ds.client.Files.Delete(path).Context(ctx).Do()
	if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 404 {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// DisabledStorage is used when no Drive credentials are configured
type DisabledStorage struct{}

var _ ImageStoreInterface = DisabledStorage{}

func (DisabledStorage) Upload(ctx context.Context, name string, data []byte, contentType string) (*StoredImage, error) {
	return nil, models.ErrStorageDisabled
}

func (DisabledStorage) Delete(ctx context.Context, path string) error {
	return models.ErrStorageDisabled
}
