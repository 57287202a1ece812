package notes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
)

// ============================================================================
// Mocks
// ============================================================================

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) CreateWithOwner(ctx context.Context, note *notes.Note, owner *notes.Collaborator) error {
	args := m.Called(ctx, note, owner)
	return args.Error(0)
}

func (m *MockNoteRepository) UpdateWithHistory(ctx context.Context, note *notes.Note, snapshot *notes.NoteHistory) error {
	args := m.Called(ctx, note, snapshot)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *notes.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*notes.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notes.Note), args.Error(1)
}

func (m *MockNoteRepository) FindVisibleToUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*notes.Note, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*notes.Note), args.Get(1).(int64), args.Error(2)
}

func (m *MockNoteRepository) FindUnpinnedForUser(ctx context.Context, userID uuid.UUID) ([]*notes.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notes.Note), args.Error(1)
}

// MockNoteHistoryRepository is a mock implementation of NoteHistoryRepository
type MockNoteHistoryRepository struct {
	mock.Mock
}

func (m *MockNoteHistoryRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]*notes.NoteHistory, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notes.NoteHistory), args.Error(1)
}

// ============================================================================
// Helpers
// ============================================================================

func ownedNote(t *testing.T, ownerID uuid.UUID) *notes.Note {
	t.Helper()
	n, err := notes.NewNote(ownerID, "Groceries", "Milk and eggs", "yellow")
	require.NoError(t, err)
	owner, err := notes.NewOwnerCollaborator(n.ID, ownerID)
	require.NoError(t, err)
	n.Collaborators = []*notes.Collaborator{owner}
	return n
}

// ============================================================================
// Tests
// ============================================================================

func TestNoteServiceCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("creates note with owner collaborator atomically", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))

		noteRepo.On("CreateWithOwner", mock.Anything, mock.MatchedBy(func(n *notes.Note) bool {
			return n.UserID == userID && n.Title == "Groceries"
		}), mock.MatchedBy(func(c *notes.Collaborator) bool {
			return c.UserID == userID && c.IsOwner
		})).Return(nil)
		noteRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		resp, err := service.Create(context.Background(), userID, CreateNoteRequest{
			Title:       "Groceries",
			Description: "Milk and eggs",
			Color:       "yellow",
		})

		require.NoError(t, err)
		assert.Equal(t, "Groceries", resp.Title)
		assert.Equal(t, userID, resp.LastModifiedBy)
		noteRepo.AssertExpectations(t)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))

		_, err := service.Create(context.Background(), userID, CreateNoteRequest{
			Description: "Milk and eggs",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NOTE", domainErr.Code)
		noteRepo.AssertNotCalled(t, "CreateWithOwner")
	})
}

func TestNoteServiceUpdate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("snapshots the pre edit state", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))

		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("UpdateWithHistory", mock.Anything, note, mock.MatchedBy(func(h *notes.NoteHistory) bool {
			return h.NoteID == note.ID && h.Title == "Groceries"
		})).Return(nil)

		resp, err := service.Update(context.Background(), ownerID, note.ID, UpdateNoteRequest{
			Title:       "Shopping",
			Description: "Milk, eggs and bread",
			Color:       "green",
		})

		require.NoError(t, err)
		assert.Equal(t, "Shopping", resp.Title)
		noteRepo.AssertExpectations(t)
	})

	t.Run("collaborator can edit", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		editorID := uuid.New()
		collab, err := notes.NewCollaborator(note.ID, editorID)
		require.NoError(t, err)
		note.Collaborators = append(note.Collaborators, collab)

		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("UpdateWithHistory", mock.Anything, note, mock.Anything).Return(nil)

		resp, err := service.Update(context.Background(), editorID, note.ID, UpdateNoteRequest{
			Title:       "Shopping",
			Description: "Updated by a collaborator",
		})

		require.NoError(t, err)
		assert.Equal(t, editorID, resp.LastModifiedBy)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)

		_, err := service.Update(context.Background(), uuid.New(), note.ID, UpdateNoteRequest{
			Title:       "Hijacked",
			Description: "Should not happen",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		noteRepo.AssertNotCalled(t, "UpdateWithHistory")
	})

	t.Run("missing note maps to not found", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), ownerID, uuid.New(), UpdateNoteRequest{
			Title:       "Anything",
			Description: "Anything",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOTE_NOT_FOUND", domainErr.Code)
	})
}

func TestNoteServiceSetPinned(t *testing.T) {
	ownerID := uuid.New()

	t.Run("pin skips history", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("Update", mock.Anything, note).Return(nil)

		resp, err := service.SetPinned(context.Background(), ownerID, note.ID, true)

		require.NoError(t, err)
		assert.True(t, resp.Pinned)
		noteRepo.AssertNotCalled(t, "UpdateWithHistory")
	})

	t.Run("unpin clears the flag", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		note.Pinned = true
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("Update", mock.Anything, note).Return(nil)

		resp, err := service.SetPinned(context.Background(), ownerID, note.ID, false)

		require.NoError(t, err)
		assert.False(t, resp.Pinned)
	})
}

func TestNoteServiceDelete(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owner deletes", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("Delete", mock.Anything, note.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), ownerID, note.ID))
		noteRepo.AssertExpectations(t)
	})

	t.Run("collaborator cannot delete", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		editorID := uuid.New()
		collab, err := notes.NewCollaborator(note.ID, editorID)
		require.NoError(t, err)
		note.Collaborators = append(note.Collaborators, collab)

		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)

		err = service.Delete(context.Background(), editorID, note.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		noteRepo.AssertNotCalled(t, "Delete")
	})
}

func TestNoteServiceUnpin(t *testing.T) {
	ownerID := uuid.New()

	t.Run("reports the feed page the note lands on", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		note.Pinned = true
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("Update", mock.Anything, note).Return(nil)

		// Note falls at index 25 among unpinned, so with page size 20 it
		// lands on page 3 (the first page is server-rendered)
		unpinned := make([]*notes.Note, 0, 26)
		for i := 0; i < 25; i++ {
			unpinned = append(unpinned, ownedNote(t, ownerID))
		}
		unpinned = append(unpinned, note)
		noteRepo.On("FindUnpinnedForUser", mock.Anything, ownerID).Return(unpinned, nil)

		resp, err := service.Unpin(context.Background(), ownerID, note.ID, DefaultPageSize)

		require.NoError(t, err)
		assert.False(t, resp.Note.Pinned)
		assert.Equal(t, 3, resp.TargetPage)
	})

	t.Run("first window maps to page two", func(t *testing.T) {
		note := ownedNote(t, ownerID)
		note.Pinned = true
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		noteRepo.On("Update", mock.Anything, note).Return(nil)
		noteRepo.On("FindUnpinnedForUser", mock.Anything, ownerID).
			Return([]*notes.Note{note}, nil)

		resp, err := service.Unpin(context.Background(), ownerID, note.ID, DefaultPageSize)

		require.NoError(t, err)
		assert.Equal(t, 2, resp.TargetPage)
	})
}

func TestNoteServiceList(t *testing.T) {
	userID := uuid.New()
	noteRepo := new(MockNoteRepository)
	service := NewNoteService(noteRepo, new(MockNoteHistoryRepository))

	page := []*notes.Note{ownedNote(t, userID), ownedNote(t, userID)}
	noteRepo.On("FindVisibleToUser", mock.Anything, userID, 1, DefaultPageSize).
		Return(page, int64(41), nil)

	resp, err := service.List(context.Background(), userID, 0, 0)

	require.NoError(t, err)
	assert.Len(t, resp.Notes, 2)
	assert.Equal(t, int64(41), resp.TotalCount)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 3, resp.TotalPages)
}
