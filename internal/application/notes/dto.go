package notes

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/notes"
)

// CreateNoteRequest is the request to create a note
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Color       string `json:"color" binding:"omitempty,max=50"`
}

// UpdateNoteRequest is the request to update a note
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Color       string `json:"color" binding:"omitempty,max=50"`
	Pinned      *bool  `json:"pinned"`
	Done        *bool  `json:"done"`
}

// AddCollaboratorRequest adds a collaborator by username or email
type AddCollaboratorRequest struct {
	Identifier string `json:"identifier" binding:"required,max=255"`
}

// UserSummary is the compact user representation embedded in note responses
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email"`
	Image    string    `json:"image,omitempty"`
}

// CollaboratorResponse represents a collaborator on a note
type CollaboratorResponse struct {
	ID      uuid.UUID    `json:"id"`
	NoteID  uuid.UUID    `json:"noteId"`
	UserID  uuid.UUID    `json:"userId"`
	IsOwner bool         `json:"isOwner"`
	User    *UserSummary `json:"user,omitempty"`
}

// NoteImageResponse represents an image attached to a note
type NoteImageResponse struct {
	ID        uuid.UUID `json:"id"`
	NoteID    uuid.UUID `json:"noteId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteResponse is the full note representation
type NoteResponse struct {
	ID             uuid.UUID              `json:"id"`
	UserID         uuid.UUID              `json:"userId"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Color          string                 `json:"color"`
	Pinned         bool                   `json:"pinned"`
	Done           bool                   `json:"done"`
	LastModifiedBy uuid.UUID              `json:"lastModifiedBy"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
	Owner          *UserSummary           `json:"owner,omitempty"`
	Collaborators  []CollaboratorResponse `json:"collaborators,omitempty"`
	Images         []NoteImageResponse    `json:"images,omitempty"`
}

// UnpinNoteResponse carries the updated note plus the feed page it now falls
// on, so clients can refresh just that window
type UnpinNoteResponse struct {
	Note       NoteResponse `json:"note"`
	TargetPage int          `json:"targetPage"`
}

// NoteListResponse is the paginated note feed payload
type NoteListResponse struct {
	Notes       []NoteResponse `json:"notes"`
	TotalCount  int64          `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}

// NoteHistoryResponse is a single pre-edit snapshot of a note
type NoteHistoryResponse struct {
	ID             uuid.UUID    `json:"id"`
	NoteID         uuid.UUID    `json:"noteId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Color          string       `json:"color"`
	Done           bool         `json:"done"`
	LastModifiedBy uuid.UUID    `json:"lastModifiedBy"`
	CreatedAt      time.Time    `json:"createdAt"`
	Editor         *UserSummary `json:"editor,omitempty"`
}

// ToUserSummary converts a user entity to its summary representation
func ToUserSummary(u *identity.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Image:    u.Image,
	}
}

// ToCollaboratorResponse converts a collaborator entity to a response
func ToCollaboratorResponse(c *notes.Collaborator) CollaboratorResponse {
	return CollaboratorResponse{
		ID:      c.ID,
		NoteID:  c.NoteID,
		UserID:  c.UserID,
		IsOwner: c.IsOwner,
		User:    ToUserSummary(c.User),
	}
}

// ToNoteResponse converts a note entity to a response
func ToNoteResponse(n *notes.Note) NoteResponse {
	resp := NoteResponse{
		ID:             n.ID,
		UserID:         n.UserID,
		Title:          n.Title,
		Description:    n.Description,
		Color:          n.Color,
		Pinned:         n.Pinned,
		Done:           n.Done,
		LastModifiedBy: n.LastModifiedBy,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
		Owner:          ToUserSummary(n.Owner),
	}
	for _, c := range n.Collaborators {
		resp.Collaborators = append(resp.Collaborators, ToCollaboratorResponse(c))
	}
	for _, img := range n.Images {
		resp.Images = append(resp.Images, NoteImageResponse{
			ID:        img.ID,
			NoteID:    img.NoteID,
			URL:       img.URL,
			CreatedAt: img.CreatedAt,
		})
	}
	return resp
}

// ToNoteResponses converts a slice of note entities to responses
func ToNoteResponses(list []*notes.Note) []NoteResponse {
	responses := make([]NoteResponse, len(list))
	for i, n := range list {
		responses[i] = ToNoteResponse(n)
	}
	return responses
}

// ToNoteHistoryResponse converts a history entry to a response
func ToNoteHistoryResponse(h *notes.NoteHistory) NoteHistoryResponse {
	return NoteHistoryResponse{
		ID:             h.ID,
		NoteID:         h.NoteID,
		Title:          h.Title,
		Description:    h.Description,
		Color:          h.Color,
		Done:           h.Done,
		LastModifiedBy: h.LastModifiedBy,
		CreatedAt:      h.CreatedAt,
		Editor:         ToUserSummary(h.Editor),
	}
}
