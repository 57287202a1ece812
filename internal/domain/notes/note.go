package notes

import (
	"strings"
	"time"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Note is a sticky note on the shared board. It is the aggregate root for
// collaborators, history and attached images. The owner is always present
// in Collaborators with IsOwner set.
type Note struct {
	shared.BaseEntity
	UserID         uuid.UUID
	Title          string
	Description    string
	Color          string
	Pinned         bool
	Done           bool
	LastModifiedBy uuid.UUID
	Owner          *identity.User  `gorm:"foreignKey:UserID"`
	Collaborators  []*Collaborator `gorm:"foreignKey:NoteID"`
	Images         []*NoteImage    `gorm:"foreignKey:NoteID"`
}

// TableName returns the database table name
func (Note) TableName() string {
	return "notes"
}

// NewNote creates a new note owned by the given user
func NewNote(userID uuid.UUID, title, description, color string) (*Note, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_NOTE", "Title and description are required")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_NOTE", "Title cannot exceed 200 characters")
	}

	return &Note{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		Title:          strings.TrimSpace(title),
		Description:    description,
		Color:          color,
		LastModifiedBy: userID,
	}, nil
}

// Update applies an edit on behalf of editorID. Authorization is checked by
// the service; this only validates content and stamps the editor.
func (n *Note) Update(editorID uuid.UUID, title, description, color string, done bool) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_NOTE", "Title and description are required")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_NOTE", "Title cannot exceed 200 characters")
	}

	n.Title = strings.TrimSpace(title)
	n.Description = description
	n.Color = color
	n.Done = done
	n.LastModifiedBy = editorID
	n.UpdatedAt = time.Now()
	return nil
}

// Pin marks the note as pinned
func (n *Note) Pin(editorID uuid.UUID) {
	n.Pinned = true
	n.LastModifiedBy = editorID
	n.UpdatedAt = time.Now()
}

// Unpin clears the pinned flag
func (n *Note) Unpin(editorID uuid.UUID) {
	n.Pinned = false
	n.LastModifiedBy = editorID
	n.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether the user owns the note
func (n *Note) IsOwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}

// CanEdit reports whether the user is the owner or a collaborator
func (n *Note) CanEdit(userID uuid.UUID) bool {
	if n.IsOwnedBy(userID) {
		return true
	}
	for _, c := range n.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// Snapshot captures the current content as a history record
func (n *Note) Snapshot() *NoteHistory {
	return NewNoteHistory(n)
}
