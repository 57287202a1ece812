package notes

import (
	"time"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// NoteHistory is an append-only snapshot of a note's content taken before an
// edit is applied. Rows are never updated or deleted individually; they go
// away only when the note itself is deleted.
type NoteHistory struct {
	ID             uuid.UUID
	NoteID         uuid.UUID
	Title          string
	Description    string
	Color          string
	Done           bool
	LastModifiedBy uuid.UUID
	CreatedAt      time.Time
	Editor         *identity.User `gorm:"foreignKey:LastModifiedBy"`
}

// TableName returns the database table name
func (NoteHistory) TableName() string {
	return "note_history"
}

// NewNoteHistory snapshots the note's current content
func NewNoteHistory(note *Note) *NoteHistory {
	return &NoteHistory{
		ID:             uuid.New(),
		NoteID:         note.ID,
		Title:          note.Title,
		Description:    note.Description,
		Color:          note.Color,
		Done:           note.Done,
		LastModifiedBy: note.LastModifiedBy,
		CreatedAt:      time.Now(),
	}
}
