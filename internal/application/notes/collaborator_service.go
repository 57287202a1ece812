package notes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
)

// CollaboratorService manages note sharing
type CollaboratorService struct {
	noteRepo         notes.NoteRepository
	collaboratorRepo notes.CollaboratorRepository
	userRepo         identity.UserRepository
}

// NewCollaboratorService creates a new CollaboratorService
func NewCollaboratorService(
	noteRepo notes.NoteRepository,
	collaboratorRepo notes.CollaboratorRepository,
	userRepo identity.UserRepository,
) *CollaboratorService {
	return &CollaboratorService{
		noteRepo:         noteRepo,
		collaboratorRepo: collaboratorRepo,
		userRepo:         userRepo,
	}
}

// List returns the collaborators of a note
func (s *CollaboratorService) List(ctx context.Context, userID, noteID uuid.UUID) ([]CollaboratorResponse, error) {
	if _, err := s.findAccessible(ctx, userID, noteID); err != nil {
		return nil, err
	}

	list, err := s.collaboratorRepo.FindByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	responses := make([]CollaboratorResponse, len(list))
	for i, c := range list {
		responses[i] = ToCollaboratorResponse(c)
	}
	return responses, nil
}

// Add invites a user, looked up by username or email, to collaborate on a
// note. Adding an existing collaborator is rejected.
func (s *CollaboratorService) Add(ctx context.Context, userID, noteID uuid.UUID, req AddCollaboratorRequest) (*CollaboratorResponse, error) {
	if _, err := s.findAccessible(ctx, userID, noteID); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, shared.NewDomainError("INVALID_IDENTIFIER", "Username or email is required")
	}

	invited, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "No user found with that username or email")
		}
		return nil, err
	}

	exists, err := s.collaboratorRepo.Exists(ctx, noteID, invited.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_COLLABORATOR", "User is already a collaborator on this note")
	}

	collaborator, err := notes.NewCollaborator(noteID, invited.ID)
	if err != nil {
		return nil, err
	}
	if err := s.collaboratorRepo.Create(ctx, collaborator); err != nil {
		return nil, err
	}

	collaborator.User = invited
	resp := ToCollaboratorResponse(collaborator)
	return &resp, nil
}

// Remove deletes a collaborator row. The owner's own row cannot be removed;
// delete the note instead.
func (s *CollaboratorService) Remove(ctx context.Context, userID, noteID, collaboratorUserID uuid.UUID) error {
	note, err := s.findAccessible(ctx, userID, noteID)
	if err != nil {
		return err
	}

	// Only the owner removes others; anyone may remove themselves
	if collaboratorUserID != userID && !note.IsOwnedBy(userID) {
		return shared.NewDomainError("FORBIDDEN", "Only the owner can remove other collaborators")
	}

	row, err := s.collaboratorRepo.FindByNoteAndUser(ctx, noteID, collaboratorUserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("COLLABORATOR_NOT_FOUND", "User is not a collaborator on this note")
		}
		return err
	}
	if row.IsOwner {
		return shared.NewDomainError("CANNOT_REMOVE_OWNER", "The owner cannot be removed from their own note")
	}

	return s.collaboratorRepo.Delete(ctx, row.ID)
}

func (s *CollaboratorService) findAccessible(ctx context.Context, userID, noteID uuid.UUID) (*notes.Note, error) {
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
	return note, nil
}
