package notes

import (
	"strings"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NoteImage is an image attached to a note, stored in object storage.
// StorageKey is the object key; URL is what clients render.
type NoteImage struct {
	shared.BaseEntity
	NoteID     uuid.UUID
	URL        string
	StorageKey string
}

// TableName returns the database table name
func (NoteImage) TableName() string {
	return "note_images"
}

// NewNoteImage creates an image attachment record
func NewNoteImage(noteID uuid.UUID, url, storageKey string) (*NoteImage, error) {
	if noteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Note ID is required")
	}
	if strings.TrimSpace(url) == "" || strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image URL and storage key are required")
	}

	return &NoteImage{
		BaseEntity: shared.NewBaseEntity(),
		NoteID:     noteID,
		URL:        url,
		StorageKey: storageKey,
	}, nil
}
