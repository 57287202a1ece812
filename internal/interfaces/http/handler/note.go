package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notesapp "github.com/chronotes/backend/internal/application/notes"
)

// NoteHandler handles sticky note endpoints
type NoteHandler struct {
	BaseHandler
	noteService         *notesapp.NoteService
	collaboratorService *notesapp.CollaboratorService
	imageService        *notesapp.ImageService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(
	noteService *notesapp.NoteService,
	collaboratorService *notesapp.CollaboratorService,
	imageService *notesapp.ImageService,
) *NoteHandler {
	return &NoteHandler{
		noteService:         noteService,
		collaboratorService: collaboratorService,
		imageService:        imageService,
	}
}

// Create creates a new note owned by the authenticated user
func (h *NoteHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req notesapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// List returns a page of notes visible to the user, pinned first
func (h *NoteHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(notesapp.DefaultPageSize)))

	result, err := h.noteService.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a single note the user can access
func (h *NoteHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), userID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Update edits a note's content; any collaborator may edit
func (h *NoteHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	var req notesapp.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), userID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Pin marks a note as pinned for faster access
func (h *NoteHandler) Pin(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	note, err := h.noteService.SetPinned(c.Request.Context(), userID, noteID, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Unpin clears the pinned flag and tells the client which feed page to refresh
func (h *NoteHandler) Unpin(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(notesapp.DefaultPageSize)))

	result, err := h.noteService.Unpin(c.Request.Context(), userID, noteID, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a note; only the owner may delete
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), userID, noteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// History returns the edit history of a note, newest first
func (h *NoteHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	history, err := h.noteService.History(c.Request.Context(), userID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// ListCollaborators returns everyone with access to the note
func (h *NoteHandler) ListCollaborators(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	collaborators, err := h.collaboratorService.List(c.Request.Context(), userID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, collaborators)
}

// AddCollaborator invites another user to the note by email or username
func (h *NoteHandler) AddCollaborator(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	var req notesapp.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	collaborator, err := h.collaboratorService.Add(c.Request.Context(), userID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, collaborator)
}

// RemoveCollaborator revokes a user's access to the note
func (h *NoteHandler) RemoveCollaborator(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	collaboratorUserID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.collaboratorService.Remove(c.Request.Context(), userID, noteID, collaboratorUserID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UploadImage attaches a multipart image upload to the note
func (h *NoteHandler) UploadImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
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

	image, err := h.imageService.Upload(c.Request.Context(), userID, noteID, fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, image)
}

// DeleteImage removes an image from the note and from storage
func (h *NoteHandler) DeleteImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), userID, noteID, imageID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
