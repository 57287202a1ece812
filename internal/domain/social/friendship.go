package social

import (
	"time"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FriendshipStatus represents the state of a friend request
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "PENDING"
	FriendshipStatusAccepted FriendshipStatus = "ACCEPTED"
	FriendshipStatusRejected FriendshipStatus = "REJECTED"
)

// Friendship holds a single row per unordered user pair. The requester sent
// the request; only the addressee may accept or reject it.
type Friendship struct {
	shared.BaseEntity
	RequesterID uuid.UUID
	AddresseeID uuid.UUID
	Status      FriendshipStatus
	Requester   *identity.User `gorm:"foreignKey:RequesterID"`
	Addressee   *identity.User `gorm:"foreignKey:AddresseeID"`
}

// TableName returns the database table name
func (Friendship) TableName() string {
	return "friendships"
}

// NewFriendship creates a pending friend request
func NewFriendship(requesterID, addresseeID uuid.UUID) (*Friendship, error) {
	if requesterID == uuid.Nil || addresseeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FRIENDSHIP", "Requester and addressee are required")
	}
	if requesterID == addresseeID {
		return nil, shared.NewDomainError("INVALID_FRIENDSHIP", "Cannot send a friend request to yourself")
	}

	return &Friendship{
		BaseEntity:  shared.NewBaseEntity(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      FriendshipStatusPending,
	}, nil
}

// Accept transitions the request to accepted. Only the addressee may do
// this, and only while the request is pending.
func (f *Friendship) Accept(byUserID uuid.UUID) error {
	return f.respond(byUserID, FriendshipStatusAccepted)
}

// Reject transitions the request to rejected
func (f *Friendship) Reject(byUserID uuid.UUID) error {
	return f.respond(byUserID, FriendshipStatusRejected)
}

func (f *Friendship) respond(byUserID uuid.UUID, status FriendshipStatus) error {
	if f.AddresseeID != byUserID {
		return shared.ErrUnauthorized
	}
	if f.Status != FriendshipStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Friend request has already been answered")
	}

	f.Status = status
	f.UpdatedAt = time.Now()
	return nil
}

// IsAccepted reports whether the two users are friends
func (f *Friendship) IsAccepted() bool {
	return f.Status == FriendshipStatusAccepted
}

// Involves reports whether the user is either side of the pair
func (f *Friendship) Involves(userID uuid.UUID) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// OtherUser returns the participant that is not the given user
func (f *Friendship) OtherUser(userID uuid.UUID) *identity.User {
	if f.RequesterID == userID {
		return f.Addressee
	}
	return f.Requester
}
