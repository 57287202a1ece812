package tracking

import (
	"strings"
	"time"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimeEntry records a contiguous block of tracked time against a category.
// Entries for one user may never overlap; intervals are half-open, so an
// entry ending at 10:00 does not conflict with one starting at 10:00.
type TimeEntry struct {
	shared.BaseEntity
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Category    *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the database table name
func (TimeEntry) TableName() string {
	return "time_entries"
}

// NewTimeEntry creates a new time entry
func NewTimeEntry(userID, categoryID uuid.UUID, title, description string, startTime, endTime time.Time) (*TimeEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID is required")
	}
	if err := validateEntryTitle(title); err != nil {
		return nil, err
	}
	if err := validateInterval(startTime, endTime); err != nil {
		return nil, err
	}

	return &TimeEntry{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		StartTime:   startTime,
		EndTime:     endTime,
	}, nil
}

// Update changes the entry's fields
func (e *TimeEntry) Update(categoryID uuid.UUID, title, description string, startTime, endTime time.Time) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID is required")
	}
	if err := validateEntryTitle(title); err != nil {
		return err
	}
	if err := validateInterval(startTime, endTime); err != nil {
		return err
	}

	e.CategoryID = categoryID
	e.Title = strings.TrimSpace(title)
	e.Description = strings.TrimSpace(description)
	e.StartTime = startTime
	e.EndTime = endTime
	e.UpdatedAt = time.Now()
	return nil
}

// Duration returns the length of the entry
func (e *TimeEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

func validateEntryTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateInterval(startTime, endTime time.Time) error {
	if startTime.IsZero() || endTime.IsZero() {
		return shared.NewDomainError("INVALID_INTERVAL", "Start and end time are required")
	}
	if !endTime.After(startTime) {
		return shared.NewDomainError("INVALID_INTERVAL", "End time must be after start time")
	}
	return nil
}
