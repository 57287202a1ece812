package notes

import (
	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Collaborator links a user to a note. The owner's own membership row
// carries IsOwner and can never be removed.
type Collaborator struct {
	shared.BaseEntity
	NoteID  uuid.UUID
	UserID  uuid.UUID
	IsOwner bool
	User    *identity.User `gorm:"foreignKey:UserID"`
}

// TableName returns the database table name
func (Collaborator) TableName() string {
	return "collaborators"
}

// NewCollaborator creates a membership row for an invited user
func NewCollaborator(noteID, userID uuid.UUID) (*Collaborator, error) {
	if noteID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLABORATOR", "Note ID and user ID are required")
	}
	return &Collaborator{
		BaseEntity: shared.NewBaseEntity(),
		NoteID:     noteID,
		UserID:     userID,
	}, nil
}

// NewOwnerCollaborator creates the owner's membership row, written in the
// same transaction that creates the note
func NewOwnerCollaborator(noteID, userID uuid.UUID) (*Collaborator, error) {
	collaborator, err := NewCollaborator(noteID, userID)
	if err != nil {
		return nil, err
	}
	collaborator.IsOwner = true
	return collaborator, nil
}
