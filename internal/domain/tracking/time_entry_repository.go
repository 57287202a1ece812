package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TimeEntryFilter contains filter options for querying time entries
type TimeEntryFilter struct {
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

// TimeEntryRepository defines the interface for time entry persistence
type TimeEntryRepository interface {
	// Create creates a new time entry
	Create(ctx context.Context, entry *TimeEntry) error

	// Update updates an existing time entry
	Update(ctx context.Context, entry *TimeEntry) error

	// Delete deletes an entry owned by the user
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// FindByIDForUser finds an entry by ID scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*TimeEntry, error)

	// FindAllForUser returns all of the user's entries with their categories,
	// most recent start time first
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*TimeEntry, error)

	// FindFiltered returns a page of entries within a date range, optionally
	// restricted to one category, plus the total match count
	FindFiltered(ctx context.Context, userID uuid.UUID, filter TimeEntryFilter) ([]*TimeEntry, int64, error)

	// FindInRange returns all entries that intersect [from, to) for reporting
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*TimeEntry, error)
}
