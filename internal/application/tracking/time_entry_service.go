package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/tracking"
	"github.com/chronotes/backend/internal/infrastructure/telemetry"
)

// TimeEntryService handles time entry CRUD with overlap rejection
type TimeEntryService struct {
	entryRepo    tracking.TimeEntryRepository
	categoryRepo tracking.CategoryRepository
	usageMetrics *telemetry.UsageMetrics
}

// SetUsageMetrics sets the usage metrics collector
func (s *TimeEntryService) SetUsageMetrics(m *telemetry.UsageMetrics) {
	s.usageMetrics = m
}

// NewTimeEntryService creates a new TimeEntryService
func NewTimeEntryService(entryRepo tracking.TimeEntryRepository, categoryRepo tracking.CategoryRepository) *TimeEntryService {
	return &TimeEntryService{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Create logs a new entry, rejecting intervals that overlap an existing one
func (s *TimeEntryService) Create(ctx context.Context, userID uuid.UUID, req CreateTimeEntryRequest) (*TimeEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "time_entry", "create",
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, req.CategoryID))
	defer span.End()

	if err := s.ensureCategory(ctx, userID, req.CategoryID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	entry, err := tracking.NewTimeEntry(userID, req.CategoryID, req.Title, req.Description, req.StartTime, req.EndTime)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, userID, entry.StartTime, entry.EndTime, uuid.Nil); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrEntryID, entry.ID)
	s.usageMetrics.RecordEntryCreated(ctx)
	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// Update changes an entry. The entry being edited is excluded from the
// overlap check so it can keep or shrink its own interval.
func (s *TimeEntryService) Update(ctx context.Context, userID, entryID uuid.UUID, req UpdateTimeEntryRequest) (*TimeEntryResponse, error) {
	entry, err := s.findForUser(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}

	if err := entry.Update(req.CategoryID, req.Title, req.Description, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, userID, entry.StartTime, entry.EndTime, entry.ID); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// Delete removes an entry owned by the user
func (s *TimeEntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	err := s.entryRepo.Delete(ctx, userID, entryID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("TIME_ENTRY_NOT_FOUND", "Time entry not found")
	}
	return err
}

// Get returns one entry owned by the user
func (s *TimeEntryService) Get(ctx context.Context, userID, entryID uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.findForUser(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	resp := ToTimeEntryResponse(entry)
	return &resp, nil
}

// List returns all of the user's entries, most recent first
func (s *TimeEntryService) List(ctx context.Context, userID uuid.UUID) ([]TimeEntryResponse, error) {
	entries, err := s.entryRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToTimeEntryResponses(entries), nil
}

// Filter returns a page of entries within a date range
func (s *TimeEntryService) Filter(ctx context.Context, userID uuid.UUID, req FilterTimeEntriesRequest) (*FilteredTimeEntriesResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date must be after start date")
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	entries, total, err := s.entryRepo.FindFiltered(ctx, userID, tracking.TimeEntryFilter{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CategoryID: req.CategoryID,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	skipped := (req.Page - 1) * req.Limit
	return &FilteredTimeEntriesResponse{
		TimeEntries: ToTimeEntryResponses(entries),
		Total:       total,
		HasMore:     total > int64(skipped+len(entries)),
	}, nil
}

func (s *TimeEntryService) ensureCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	_, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return err
	}
	return nil
}

func (s *TimeEntryService) ensureNoOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID uuid.UUID) error {
	entries, err := s.entryRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return err
	}
	if tracking.Overlaps(entries, start, end, excludeID) {
		return shared.ErrTimeOverlap
	}
	return nil
}

func (s *TimeEntryService) findForUser(ctx context.Context, userID, entryID uuid.UUID) (*tracking.TimeEntry, error) {
	entry, err := s.entryRepo.FindByIDForUser(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TIME_ENTRY_NOT_FOUND", "Time entry not found")
		}
		return nil, err
	}
	return entry, nil
}
