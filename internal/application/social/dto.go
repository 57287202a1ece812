package social

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/social"
)

// SendFriendRequestRequest is the request to send a friend request
type SendFriendRequestRequest struct {
	AddresseeID uuid.UUID `json:"addresseeId" binding:"required"`
}

// RespondFriendRequestRequest answers a pending request
type RespondFriendRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// SendMessageRequest is the request to send a chat message
type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" binding:"required"`
	Content     string    `json:"content" binding:"required,max=2000"`
}

// FriendSummary is the other participant of an accepted friendship
type FriendSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email"`
	Image    string    `json:"image,omitempty"`
}

// FriendResponse is one accepted friendship flattened to the other user
type FriendResponse struct {
	FriendshipID uuid.UUID     `json:"friendshipId"`
	Since        time.Time     `json:"since"`
	Friend       FriendSummary `json:"friend"`
}

// FriendRequestResponse is one pending incoming request
type FriendRequestResponse struct {
	ID        uuid.UUID      `json:"id"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Requester *FriendSummary `json:"requester,omitempty"`
}

// MessageResponse is one chat message
type MessageResponse struct {
	ID          uuid.UUID      `json:"id"`
	SenderID    uuid.UUID      `json:"senderId"`
	RecipientID uuid.UUID      `json:"recipientId"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"createdAt"`
	Sender      *FriendSummary `json:"sender,omitempty"`
}

func toFriendSummary(u *identity.User) *FriendSummary {
	if u == nil {
		return nil
	}
	return &FriendSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Image:    u.Image,
	}
}

// ToFriendResponse flattens a friendship to the participant that is not the
// viewing user
func ToFriendResponse(f *social.Friendship, viewerID uuid.UUID) FriendResponse {
	resp := FriendResponse{
		FriendshipID: f.ID,
		Since:        f.UpdatedAt,
	}
	if other := toFriendSummary(f.OtherUser(viewerID)); other != nil {
		resp.Friend = *other
	} else if f.RequesterID == viewerID {
		resp.Friend = FriendSummary{ID: f.AddresseeID}
	} else {
		resp.Friend = FriendSummary{ID: f.RequesterID}
	}
	return resp
}

// ToFriendRequestResponse converts a pending request to a response
func ToFriendRequestResponse(f *social.Friendship) FriendRequestResponse {
	return FriendRequestResponse{
		ID:        f.ID,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
		Requester: toFriendSummary(f.Requester),
	}
}

// ToMessageResponse converts a message to a response
func ToMessageResponse(m *social.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
		Sender:      toFriendSummary(m.Sender),
	}
}
