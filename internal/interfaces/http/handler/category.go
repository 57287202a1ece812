package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	trackingapp "github.com/chronotes/backend/internal/application/tracking"
)

// CategoryHandler handles time tracking category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *trackingapp.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *trackingapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create creates a new category for the authenticated user
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trackingapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// List returns all categories belonging to the authenticated user
func (h *CategoryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// GetByID returns a single category
func (h *CategoryHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), userID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Exists reports whether a category with the given name already exists
func (h *CategoryHandler) Exists(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trackingapp.CategoryExistsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.BadRequest(c, "Category name is required")
		return
	}

	result, err := h.categoryService.Exists(c.Request.Context(), userID, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update renames or recolors a category
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req trackingapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), userID, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes a category and its time entries
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), userID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
