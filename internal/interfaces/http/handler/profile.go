package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	identityapp "github.com/chronotes/backend/internal/application/identity"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Get returns the authenticated user's profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// Update changes name, username or phone
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ChangePassword updates the user's password after verifying the current one
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.profileService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

// UploadAvatar accepts a multipart image upload and stores it as the avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	profile, err := h.profileService.UploadAvatar(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
