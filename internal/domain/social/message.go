package social

import (
	"strings"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const maxMessageLength = 2000

// Message is a direct chat message between two friends
type Message struct {
	shared.BaseEntity
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	Sender      *identity.User `gorm:"foreignKey:SenderID"`
}

// TableName returns the database table name
func (Message) TableName() string {
	return "messages"
}

// NewMessage creates a chat message
func NewMessage(senderID, recipientID uuid.UUID, content string) (*Message, error) {
	if senderID == uuid.Nil || recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Sender and recipient are required")
	}
	if senderID == recipientID {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Cannot message yourself")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message content is too long")
	}

	return &Message{
		BaseEntity:  shared.NewBaseEntity(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}, nil
}
