package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	socialapp "github.com/chronotes/backend/internal/application/social"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID     string
	UserID string
	Chan   chan SSEMessage
	Done   chan struct{}
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// ChatStreamHandler pushes chat messages to connected recipients over
// Server-Sent Events. It implements socialapp.MessagePublisher so the chat
// service can hand off delivery after persisting a message.
type ChatStreamHandler struct {
	BaseHandler
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	bufferSize int
	maxClients int
}

// ChatStreamOption is a functional option for configuring the handler
type ChatStreamOption func(*ChatStreamHandler)

// WithStreamLogger sets the logger for the handler
func WithStreamLogger(logger *zap.Logger) ChatStreamOption {
	return func(h *ChatStreamHandler) {
		h.logger = logger
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) ChatStreamOption {
	return func(h *ChatStreamHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithStreamBufferSize sets the per-client message buffer
func WithStreamBufferSize(size int) ChatStreamOption {
	return func(h *ChatStreamHandler) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// WithStreamMaxClients sets the maximum number of concurrent SSE clients
func WithStreamMaxClients(max int) ChatStreamOption {
	return func(h *ChatStreamHandler) {
		h.maxClients = max
	}
}

// NewChatStreamHandler creates a new SSE handler for chat message delivery
func NewChatStreamHandler(opts ...ChatStreamOption) *ChatStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &ChatStreamHandler{
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		bufferSize: 16,
		maxClients: 10000,
	}

	for _, opt := range opts {
		opt(h)
	}

	go h.sendHeartbeats()

	return h
}

// Stop disconnects all clients and halts heartbeats
func (h *ChatStreamHandler) Stop() {
	h.cancel()

	h.clients.Range(func(key, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("Chat stream handler stopped")
}

// Publish delivers a message to every open connection of the recipient.
// Delivery is best effort; offline recipients read the message from the
// conversation history instead.
func (h *ChatStreamHandler) Publish(recipientID uuid.UUID, message socialapp.MessageResponse) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to marshal chat event", zap.Error(err))
		return
	}

	msg := SSEMessage{
		Event: "message",
		Data:  string(data),
		ID:    message.ID.String(),
	}

	recipient := recipientID.String()
	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok || client.UserID != recipient {
			return true
		}

		select {
		case client.Chan <- msg:
		default:
			// Channel full, client is reading too slowly
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// sendHeartbeats periodically sends heartbeat messages to keep connections alive
func (h *ChatStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			heartbeat := SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			}
			h.clients.Range(func(key, value any) bool {
				if client, ok := value.(*SSEClient); ok {
					select {
					case client.Chan <- heartbeat:
					default:
					}
				}
				return true
			})
		}
	}
}

// Stream establishes a Server-Sent Events connection for the authenticated user
func (h *ChatStreamHandler) Stream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		c.JSON(503, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MAX_CONNECTIONS_REACHED",
				"message": "Maximum number of stream connections reached",
			},
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := &SSEClient{
		ID:     uuid.New().String(),
		UserID: userID.String(),
		Chan:   make(chan SSEMessage, h.bufferSize),
		Done:   make(chan struct{}),
	}

	h.clients.Store(client.ID, client)
	defer func() {
		close(client.Chan)
		h.clients.Delete(client.ID)
	}()

	h.logger.Info("Chat stream client connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID))

	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Chat stream client disconnected",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			return
		case <-h.ctx.Done():
			return
		case msg, ok := <-client.Chan:
			if !ok {
				return
			}
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *ChatStreamHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// ClientCount returns the number of connected SSE clients
func (h *ChatStreamHandler) ClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
