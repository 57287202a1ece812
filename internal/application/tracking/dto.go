package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chronotes/backend/internal/domain/tracking"
)

// CreateCategoryRequest is the request to create a category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,max=7"`
}

// UpdateCategoryRequest is the request to update a category
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,max=7"`
}

// CategoryResponse is the category representation returned to clients
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryExistsRequest asks whether a category name is already used
type CategoryExistsRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryExistsResponse reports whether a category name is already used
type CategoryExistsResponse struct {
	Exists bool `json:"exists"`
}

// CreateTimeEntryRequest is the request to log a time entry
type CreateTimeEntryRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

// UpdateTimeEntryRequest is the request to change a time entry
type UpdateTimeEntryRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

// FilterTimeEntriesRequest selects a page of entries within a date range
type FilterTimeEntriesRequest struct {
	StartDate  time.Time  `json:"startDate" binding:"required"`
	EndDate    time.Time  `json:"endDate" binding:"required"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// TimeEntryResponse is the entry representation returned to clients
type TimeEntryResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	CategoryID  uuid.UUID         `json:"categoryId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// FilteredTimeEntriesResponse is a page of filtered entries
type FilteredTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	Total       int64               `json:"total"`
	HasMore     bool                `json:"hasMore"`
}

// CategoryReport aggregates tracked time for one category
type CategoryReport struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Hours      decimal.Decimal `json:"hours"`
	Percentage decimal.Decimal `json:"percentage"`
	EntryCount int             `json:"entryCount"`
}

// ReportResponse summarises tracked time within a window
type ReportResponse struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	TotalHours decimal.Decimal  `json:"totalHours"`
	EntryCount int              `json:"entryCount"`
	Categories []CategoryReport `json:"categories"`
}

// ToCategoryResponse converts a category entity to a response
func ToCategoryResponse(c *tracking.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToTimeEntryResponse converts a time entry entity to a response
func ToTimeEntryResponse(e *tracking.TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Category != nil {
		category := ToCategoryResponse(e.Category)
		resp.Category = &category
	}
	return resp
}

// ToTimeEntryResponses converts a slice of entries to responses
func ToTimeEntryResponses(entries []*tracking.TimeEntry) []TimeEntryResponse {
	responses := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToTimeEntryResponse(e)
	}
	return responses
}
