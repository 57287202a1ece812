package social

import (
	"context"
	"errors"

	"github.com/google/uuid"

	trackingapp "github.com/chronotes/backend/internal/application/tracking"
	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/social"
	"github.com/chronotes/backend/internal/domain/tracking"
)

// maxActivityEntries caps the number of entries shown on a friend's activity
// view
const maxActivityEntries = 50

// FriendshipService handles friend requests and the friends list
type FriendshipService struct {
	friendshipRepo social.FriendshipRepository
	userRepo       identity.UserRepository
	entryRepo      tracking.TimeEntryRepository
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(
	friendshipRepo social.FriendshipRepository,
	userRepo identity.UserRepository,
	entryRepo tracking.TimeEntryRepository,
) *FriendshipService {
	return &FriendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		entryRepo:      entryRepo,
	}
}

// ListFriends returns accepted friendships flattened to the other user
func (s *FriendshipService) ListFriends(ctx context.Context, userID uuid.UUID) ([]FriendResponse, error) {
	friendships, err := s.friendshipRepo.FindAcceptedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]FriendResponse, len(friendships))
	for i, f := range friendships {
		responses[i] = ToFriendResponse(f, userID)
	}
	return responses, nil
}

// ListRequests returns pending requests awaiting the user's answer
func (s *FriendshipService) ListRequests(ctx context.Context, userID uuid.UUID) ([]FriendRequestResponse, error) {
	requests, err := s.friendshipRepo.FindPendingForAddressee(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]FriendRequestResponse, len(requests))
	for i, f := range requests {
		responses[i] = ToFriendRequestResponse(f)
	}
	return responses, nil
}

// SendRequest creates a pending request. Any existing row for the pair,
// whatever its status, blocks a new one.
func (s *FriendshipService) SendRequest(ctx context.Context, userID uuid.UUID, req SendFriendRequestRequest) (*FriendRequestResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, req.AddresseeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, userID, req.AddresseeID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("FRIEND_REQUEST_EXISTS", "Friend request already exists")
	}

	friendship, err := social.NewFriendship(userID, req.AddresseeID)
	if err != nil {
		return nil, err
	}
	if err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	resp := ToFriendRequestResponse(friendship)
	return &resp, nil
}

// Respond accepts or rejects a pending request. Only the addressee may
// answer, and an answered request is final.
func (s *FriendshipService) Respond(ctx context.Context, userID, requestID uuid.UUID, req RespondFriendRequestRequest) (*FriendRequestResponse, error) {
	friendship, err := s.friendshipRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FRIEND_REQUEST_NOT_FOUND", "Friend request not found")
		}
		return nil, err
	}

	switch social.FriendshipStatus(req.Status) {
	case social.FriendshipStatusAccepted:
		err = friendship.Accept(userID)
	case social.FriendshipStatusRejected:
		err = friendship.Reject(userID)
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be ACCEPTED or REJECTED")
	}
	if err != nil {
		return nil, err
	}

	if err := s.friendshipRepo.Update(ctx, friendship); err != nil {
		return nil, err
	}

	resp := ToFriendRequestResponse(friendship)
	return &resp, nil
}

// FriendActivities returns a friend's recent time entries. The viewer must
// have an accepted friendship with them.
func (s *FriendshipService) FriendActivities(ctx context.Context, userID, friendID uuid.UUID) ([]trackingapp.TimeEntryResponse, error) {
	if err := s.EnsureFriends(ctx, userID, friendID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindAllForUser(ctx, friendID)
	if err != nil {
		return nil, err
	}
	if len(entries) > maxActivityEntries {
		entries = entries[:maxActivityEntries]
	}

	return trackingapp.ToTimeEntryResponses(entries), nil
}

// EnsureFriends returns nil only when an accepted friendship links the two
// users
func (s *FriendshipService) EnsureFriends(ctx context.Context, userA, userB uuid.UUID) error {
	friendship, err := s.friendshipRepo.FindBetween(ctx, userA, userB)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FRIENDS", "You are not friends with this user")
		}
		return err
	}
	if !friendship.IsAccepted() {
		return shared.NewDomainError("NOT_FRIENDS", "You are not friends with this user")
	}
	return nil
}
