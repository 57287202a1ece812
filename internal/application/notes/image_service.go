package notes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
)

// AllowedImageContentTypes is the whitelist of content types accepted for
// uploads. SVG is excluded because it can carry scripts.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// MaxImageSize is the maximum accepted upload size in bytes
const MaxImageSize = 5 << 20

// ObjectStorageService defines the interface for object storage operations,
// implemented by the infrastructure layer
type ObjectStorageService interface {
	// Upload stores an object under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading an object.
	// Returns the URL and its expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageService handles note image uploads and removal
type ImageService struct {
	noteRepo  notes.NoteRepository
	imageRepo notes.NoteImageRepository
	storage   ObjectStorageService
	urlExpiry time.Duration
	logger    *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	noteRepo notes.NoteRepository,
	imageRepo notes.NoteImageRepository,
	storage ObjectStorageService,
	urlExpiry time.Duration,
	logger *zap.Logger,
) *ImageService {
	if urlExpiry <= 0 {
		urlExpiry = time.Hour
	}
	return &ImageService{
		noteRepo:  noteRepo,
		imageRepo: imageRepo,
		storage:   storage,
		urlExpiry: urlExpiry,
		logger:    logger,
	}
}

// Upload stores an image in object storage and records it on the note
func (s *ImageService) Upload(ctx context.Context, userID, noteID uuid.UUID, fileName, contentType string, data []byte) (*NoteImageResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOTE_NOT_FOUND", "Note not found")
		}
		return nil, err
	}
	if !note.CanEdit(userID) {
		return nil, shared.NewDomainError("FORBIDDEN", "You do not have access to this note")
	}

	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image data is empty")
	}
	if len(data) > MaxImageSize {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Image exceeds the maximum size of %d bytes", MaxImageSize))
	}
	if !AllowedImageContentTypes[strings.ToLower(contentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for images", contentType))
	}

	storageKey := s.generateStorageKey(noteID, fileName)
	if err := s.storage.Upload(ctx, storageKey, data, contentType); err != nil {
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store the image")
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.urlExpiry)
	if err != nil {
		_ = s.storage.DeleteObject(ctx, storageKey)
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to generate the image URL")
	}

	image, err := notes.NewNoteImage(noteID, url, storageKey)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		_ = s.storage.DeleteObject(ctx, storageKey)
		return nil, err
	}

	return &NoteImageResponse{
		ID:        image.ID,
		NoteID:    image.NoteID,
		URL:       image.URL,
		CreatedAt: image.CreatedAt,
	}, nil
}

// Delete removes an image record and its stored object
func (s *ImageService) Delete(ctx context.Context, userID, noteID, imageID uuid.UUID) error {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOTE_NOT_FOUND", "Note not found")
		}
		return err
	}
	if !note.CanEdit(userID) {
		return shared.NewDomainError("FORBIDDEN", "You do not have access to this note")
	}

	image, err := s.imageRepo.FindByIDForNote(ctx, noteID, imageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("IMAGE_NOT_FOUND", "Image not found")
		}
		return err
	}

	// The storage object might already be gone; log and continue
	if err := s.storage.DeleteObject(ctx, image.StorageKey); err != nil {
		s.logger.Warn("failed to delete image from storage",
			zap.String("image_id", image.ID.String()),
			zap.String("storage_key", image.StorageKey),
			zap.Error(err))
	}

	return s.imageRepo.Delete(ctx, image.ID)
}

func (s *ImageService) generateStorageKey(noteID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("notes/%s/images/%s%s", noteID.String(), uuid.New().String(), ext)
}
