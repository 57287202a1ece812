package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	socialapp "github.com/chronotes/backend/internal/application/social"
)

// FriendshipHandler handles friendship endpoints
type FriendshipHandler struct {
	BaseHandler
	friendshipService *socialapp.FriendshipService
}

// NewFriendshipHandler creates a new friendship handler
func NewFriendshipHandler(friendshipService *socialapp.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipService: friendshipService,
	}
}

// ListFriends returns all accepted friendships of the authenticated user
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	friends, err := h.friendshipService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, friends)
}

// ListRequests returns pending friend requests addressed to the user
func (h *FriendshipHandler) ListRequests(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requests, err := h.friendshipService.ListRequests(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// SendRequest sends a friend request to another user
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req socialapp.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.friendshipService.SendRequest(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// Respond accepts or rejects a pending friend request
func (h *FriendshipHandler) Respond(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid friend request ID format")
		return
	}

	var req socialapp.RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.friendshipService.Respond(c.Request.Context(), userID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Activities returns a friend's recent time entries
func (h *FriendshipHandler) Activities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	friendID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	activities, err := h.friendshipService.FriendActivities(c.Request.Context(), userID, friendID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, activities)
}
