package notes

import (
	"context"

	"github.com/google/uuid"
)

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	// CreateWithOwner creates the note and its owner collaborator row in a
	// single transaction
	CreateWithOwner(ctx context.Context, note *Note, owner *Collaborator) error

	// UpdateWithHistory writes the pre-edit snapshot and the updated note in
	// a single transaction
	UpdateWithHistory(ctx context.Context, note *Note, snapshot *NoteHistory) error

	// Update updates the note without recording history, used for pin state
	Update(ctx context.Context, note *Note) error

	// Delete removes the note and its collaborators, history and images
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID loads a note with its owner, collaborators and images
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)

	// FindVisibleToUser returns a feed page of notes the user owns or
	// collaborates on, most recently updated first, plus the total count
	FindVisibleToUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*Note, int64, error)

	// FindUnpinnedForUser returns all visible unpinned notes ordered by
	// creation time descending, used to locate an unpinned note's feed page
	FindUnpinnedForUser(ctx context.Context, userID uuid.UUID) ([]*Note, error)
}

// CollaboratorRepository defines the interface for collaborator persistence
type CollaboratorRepository interface {
	// Create adds a collaborator to a note
	Create(ctx context.Context, collaborator *Collaborator) error

	// Delete removes a collaborator row
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByNote returns all collaborators of a note with their users
	FindByNote(ctx context.Context, noteID uuid.UUID) ([]*Collaborator, error)

	// FindByNoteAndUser finds a user's membership row on a note
	FindByNoteAndUser(ctx context.Context, noteID, userID uuid.UUID) (*Collaborator, error)

	// Exists checks whether the user is already a collaborator
	Exists(ctx context.Context, noteID, userID uuid.UUID) (bool, error)
}

// NoteHistoryRepository defines the interface for history persistence
type NoteHistoryRepository interface {
	// FindByNote returns snapshots for a note, newest first
	FindByNote(ctx context.Context, noteID uuid.UUID) ([]*NoteHistory, error)
}

// NoteImageRepository defines the interface for image persistence
type NoteImageRepository interface {
	// Create records an uploaded image
	Create(ctx context.Context, image *NoteImage) error

	// Delete removes an image record
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByIDForNote finds an image scoped to its note
	FindByIDForNote(ctx context.Context, noteID, id uuid.UUID) (*NoteImage, error)

	// FindByNote returns all images of a note
	FindByNote(ctx context.Context, noteID uuid.UUID) ([]*NoteImage, error)
}
