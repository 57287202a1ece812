package notes

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/infrastructure/telemetry"
)

// DefaultPageSize is the fixed feed page size
const DefaultPageSize = 20

// NoteService handles note CRUD, the paginated feed and pin state
type NoteService struct {
	noteRepo     notes.NoteRepository
	historyRepo  notes.NoteHistoryRepository
	usageMetrics *telemetry.UsageMetrics
}

// SetUsageMetrics sets the usage metrics collector
func (s *NoteService) SetUsageMetrics(m *telemetry.UsageMetrics) {
	s.usageMetrics = m
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo notes.NoteRepository, historyRepo notes.NoteHistoryRepository) *NoteService {
	return &NoteService{
		noteRepo:    noteRepo,
		historyRepo: historyRepo,
	}
}

// Create creates a note and its owner collaborator row atomically
func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	note, err := notes.NewNote(userID, req.Title, req.Description, req.Color)
	if err != nil {
		return nil, err
	}

	owner, err := notes.NewOwnerCollaborator(note.ID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.CreateWithOwner(ctx, note, owner); err != nil {
		return nil, err
	}
	s.usageMetrics.RecordNoteCreated(ctx)

	created, err := s.noteRepo.FindByID(ctx, note.ID)
	if err != nil {
		// The note was committed; fall back to the in-memory entity
		resp := ToNoteResponse(note)
		return &resp, nil
	}

	resp := ToNoteResponse(created)
	return &resp, nil
}

// Get returns a note visible to the user
func (s *NoteService) Get(ctx context.Context, userID, noteID uuid.UUID) (*NoteResponse, error) {
	note, err := s.findEditable(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	resp := ToNoteResponse(note)
	return &resp, nil
}

// List returns one feed page of notes the user owns or collaborates on
func (s *NoteService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*NoteListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	list, total, err := s.noteRepo.FindVisibleToUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &NoteListResponse{
		Notes:       ToNoteResponses(list),
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// Update applies an edit, snapshotting the pre-edit state into history in the
// same transaction. Any collaborator may edit.
func (s *NoteService) Update(ctx context.Context, userID, noteID uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.findEditable(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	snapshot := note.Snapshot()

	done := note.Done
	if req.Done != nil {
		done = *req.Done
	}
	if err := note.Update(userID, req.Title, req.Description, req.Color, done); err != nil {
		return nil, err
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}

	if err := s.noteRepo.UpdateWithHistory(ctx, note, snapshot); err != nil {
		return nil, err
	}

	resp := ToNoteResponse(note)
	return &resp, nil
}

// SetPinned changes the pin flag without recording history
func (s *NoteService) SetPinned(ctx context.Context, userID, noteID uuid.UUID, pinned bool) (*NoteResponse, error) {
	note, err := s.findEditable(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if pinned {
		note.Pin(userID)
	} else {
		note.Unpin(userID)
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	resp := ToNoteResponse(note)
	return &resp, nil
}

// Unpin clears the pin flag and reports which feed page the note now falls
// on, counting its position among unpinned notes by creation time with the
// first page rendered separately.
func (s *NoteService) Unpin(ctx context.Context, userID, noteID uuid.UUID, pageSize int) (*UnpinNoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "note", "unpin",
		telemetry.WithAttribute(telemetry.SpanAttrNoteID, noteID))
	defer span.End()

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	note, err := s.SetPinned(ctx, userID, noteID, false)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	unpinned, err := s.noteRepo.FindUnpinnedForUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	targetPage := 2
	for i, n := range unpinned {
		if n.ID == noteID {
			targetPage = i/pageSize + 2
			break
		}
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrPage, targetPage)
	return &UnpinNoteResponse{Note: *note, TargetPage: targetPage}, nil
}

// Delete removes a note with its collaborators, history and images. Only the
// owner may delete.
func (s *NoteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return err
	}
	if !note.IsOwnedBy(userID) {
		return shared.NewDomainError("FORBIDDEN", "Only the owner can delete a note")
	}

	return s.noteRepo.Delete(ctx, noteID)
}

// History returns the note's edit snapshots, newest first
func (s *NoteService) History(ctx context.Context, userID, noteID uuid.UUID) ([]NoteHistoryResponse, error) {
	if _, err := s.findEditable(ctx, userID, noteID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	responses := make([]NoteHistoryResponse, len(entries))
	for i, h := range entries {
		responses[i] = ToNoteHistoryResponse(h)
	}
	return responses, nil
}

// FetchPage implements FeedSource
func (s *NoteService) FetchPage(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*notes.Note, int64, error) {
	return s.noteRepo.FindVisibleToUser(ctx, userID, page, pageSize)
}

// UnpinnedNotes implements FeedSource
func (s *NoteService) UnpinnedNotes(ctx context.Context, userID uuid.UUID) ([]*notes.Note, error) {
	return s.noteRepo.FindUnpinnedForUser(ctx, userID)
}

func (s *NoteService) findEditable(ctx context.Context, userID, noteID uuid.UUID) (*notes.Note, error) {
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
