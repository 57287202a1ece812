package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	socialapp "github.com/chronotes/backend/internal/application/social"
)

// ChatHandler handles direct message endpoints
type ChatHandler struct {
	BaseHandler
	chatService *socialapp.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *socialapp.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Send persists a message to a friend and pushes it to open streams
func (h *ChatHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req socialapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// Conversation returns the message history with a friend, oldest first
func (h *ChatHandler) Conversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	friendID, err := uuid.Parse(c.Param("friend_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	messages, err := h.chatService.Conversation(c.Request.Context(), userID, friendID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, messages)
}
