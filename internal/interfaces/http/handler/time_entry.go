package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	trackingapp "github.com/chronotes/backend/internal/application/tracking"
)

// TimeEntryHandler handles time entry endpoints
type TimeEntryHandler struct {
	BaseHandler
	entryService  *trackingapp.TimeEntryService
	reportService *trackingapp.ReportService
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(entryService *trackingapp.TimeEntryService, reportService *trackingapp.ReportService) *TimeEntryHandler {
	return &TimeEntryHandler{
		entryService:  entryService,
		reportService: reportService,
	}
}

// Create logs a new time entry
func (h *TimeEntryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trackingapp.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// List returns all time entries for the authenticated user
func (h *TimeEntryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := h.entryService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetByID returns a single time entry
func (h *TimeEntryHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid time entry ID format")
		return
	}

	entry, err := h.entryService.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Filter returns a page of entries within a date range
func (h *TimeEntryHandler) Filter(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trackingapp.FilterTimeEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.entryService.Filter(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update changes an existing time entry
func (h *TimeEntryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid time entry ID format")
		return
	}

	var req trackingapp.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), userID, entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete removes a time entry
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid time entry ID format")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), userID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report summarises tracked hours per category within [from, to)
func (h *TimeEntryHandler) Report(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		h.BadRequest(c, "Query parameter 'start' must be an RFC 3339 timestamp")
		return
	}

	to, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		h.BadRequest(c, "Query parameter 'end' must be an RFC 3339 timestamp")
		return
	}

	report, err := h.reportService.Summary(c.Request.Context(), userID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
