package persistence

import (
	"context"
	"errors"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/social"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFriendshipRepository implements social.FriendshipRepository using GORM
type GormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a new GormFriendshipRepository
func NewGormFriendshipRepository(db *gorm.DB) *GormFriendshipRepository {
	return &GormFriendshipRepository{db: db}
}

// Create creates a friend request
func (r *GormFriendshipRepository) Create(ctx context.Context, friendship *social.Friendship) error {
	return r.db.WithContext(ctx).Omit("Requester", "Addressee").Create(friendship).Error
}

// Update persists a status transition
func (r *GormFriendshipRepository) Update(ctx context.Context, friendship *social.Friendship) error {
	return r.db.WithContext(ctx).Omit("Requester", "Addressee").Save(friendship).Error
}

// FindByID finds a friendship by ID
func (r *GormFriendshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Friendship, error) {
	var friendship social.Friendship
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		First(&friendship, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// FindBetween finds the row for an unordered user pair, if any
func (r *GormFriendshipRepository) FindBetween(ctx context.Context, userA, userB uuid.UUID) (*social.Friendship, error) {
	var friendship social.Friendship
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// FindAcceptedForUser returns accepted friendships involving the user
func (r *GormFriendshipRepository) FindAcceptedForUser(ctx context.Context, userID uuid.UUID) ([]*social.Friendship, error) {
	var friendships []*social.Friendship
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		Where("status = ?", social.FriendshipStatusAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

// FindPendingForAddressee returns pending requests awaiting the user's answer
func (r *GormFriendshipRepository) FindPendingForAddressee(ctx context.Context, userID uuid.UUID) ([]*social.Friendship, error) {
	var friendships []*social.Friendship
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ? AND addressee_id = ?", social.FriendshipStatusPending, userID).
		Order("created_at DESC").
		Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

var _ social.FriendshipRepository = (*GormFriendshipRepository)(nil)

// GormMessageRepository implements social.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a message
func (r *GormMessageRepository) Create(ctx context.Context, message *social.Message) error {
	return r.db.WithContext(ctx).Omit("Sender").Create(message).Error
}

// FindConversation returns all messages between two users, oldest first
func (r *GormMessageRepository) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*social.Message, error) {
	var messages []*social.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

var _ social.MessageRepository = (*GormMessageRepository)(nil)
