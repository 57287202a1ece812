package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chronotes/backend/internal/domain/social"
	"github.com/chronotes/backend/internal/infrastructure/telemetry"
)

// MessagePublisher pushes a delivered message to a connected recipient.
// Implemented by the SSE hub in the transport layer; delivery is best effort
// and a recipient without an open stream simply misses the push.
type MessagePublisher interface {
	Publish(recipientID uuid.UUID, message MessageResponse)
}

// ChatService handles direct messages between friends
type ChatService struct {
	messageRepo       social.MessageRepository
	friendshipService *FriendshipService
	publisher         MessagePublisher
	logger            *zap.Logger
	usageMetrics      *telemetry.UsageMetrics
}

// SetUsageMetrics sets the usage metrics collector
func (s *ChatService) SetUsageMetrics(m *telemetry.UsageMetrics) {
	s.usageMetrics = m
}

// NewChatService creates a new ChatService
func NewChatService(
	messageRepo social.MessageRepository,
	friendshipService *FriendshipService,
	publisher MessagePublisher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		messageRepo:       messageRepo,
		friendshipService: friendshipService,
		publisher:         publisher,
		logger:            logger,
	}
}

// Send persists a message to a friend and pushes it to their open stream
func (s *ChatService) Send(ctx context.Context, senderID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "chat", "send",
		telemetry.WithAttribute(telemetry.SpanAttrFriendID, req.RecipientID))
	defer span.End()

	if err := s.friendshipService.EnsureFriends(ctx, senderID, req.RecipientID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	message, err := social.NewMessage(senderID, req.RecipientID, req.Content)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.usageMetrics.RecordMessageSent(ctx)

	resp := ToMessageResponse(message)
	if s.publisher != nil {
		s.publisher.Publish(req.RecipientID, resp)
	}

	return &resp, nil
}

// Conversation returns the message history with a friend, oldest first
func (s *ChatService) Conversation(ctx context.Context, userID, friendID uuid.UUID) ([]MessageResponse, error) {
	if err := s.friendshipService.EnsureFriends(ctx, userID, friendID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindConversation(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
	}
	return responses, nil
}
