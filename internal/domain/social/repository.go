package social

import (
	"context"

	"github.com/google/uuid"
)

// FriendshipRepository defines the interface for friendship persistence
type FriendshipRepository interface {
	// Create creates a friend request
	Create(ctx context.Context, friendship *Friendship) error

	// Update persists a status transition
	Update(ctx context.Context, friendship *Friendship) error

	// FindByID finds a friendship by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Friendship, error)

	// FindBetween finds the row for an unordered user pair, if any
	FindBetween(ctx context.Context, userA, userB uuid.UUID) (*Friendship, error)

	// FindAcceptedForUser returns accepted friendships involving the user,
	// with both participants loaded
	FindAcceptedForUser(ctx context.Context, userID uuid.UUID) ([]*Friendship, error)

	// FindPendingForAddressee returns pending requests awaiting the user's
	// answer, with the requester loaded
	FindPendingForAddressee(ctx context.Context, userID uuid.UUID) ([]*Friendship, error)
}

// MessageRepository defines the interface for chat message persistence
type MessageRepository interface {
	// Create persists a message
	Create(ctx context.Context, message *Message) error

	// FindConversation returns all messages between two users, oldest first
	FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*Message, error)
}
