package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTimeEntryRepository implements tracking.TimeEntryRepository using GORM
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewGormTimeEntryRepository creates a new GormTimeEntryRepository
func NewGormTimeEntryRepository(db *gorm.DB) *GormTimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create creates a new time entry
func (r *GormTimeEntryRepository) Create(ctx context.Context, entry *tracking.TimeEntry) error {
	return r.db.WithContext(ctx).Omit("Category").Create(entry).Error
}

// Update updates an existing time entry
func (r *GormTimeEntryRepository) Update(ctx context.Context, entry *tracking.TimeEntry) error {
	return r.db.WithContext(ctx).Omit("Category").Save(entry).Error
}

// Delete deletes an entry owned by the user
func (r *GormTimeEntryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&tracking.TimeEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForUser finds an entry by ID scoped to its owner
func (r *GormTimeEntryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*tracking.TimeEntry, error) {
	var entry tracking.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND id = ?", userID, id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAllForUser returns all of the user's entries with their categories,
// most recent start time first
func (r *GormTimeEntryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*tracking.TimeEntry, error) {
	var entries []*tracking.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindFiltered returns a page of entries within a date range plus the total count
func (r *GormTimeEntryRepository) FindFiltered(ctx context.Context, userID uuid.UUID, filter tracking.TimeEntryFilter) ([]*tracking.TimeEntry, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&tracking.TimeEntry{}).
		Where("user_id = ?", userID).
		Where("start_time >= ? AND start_time <= ?", filter.StartDate, filter.EndDate)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var entries []*tracking.TimeEntry
	if err := query.
		Preload("Category").
		Order("start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// FindInRange returns all entries that intersect [from, to) for reporting
func (r *GormTimeEntryRepository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*tracking.TimeEntry, error) {
	var entries []*tracking.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Where("end_time > ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var _ tracking.TimeEntryRepository = (*GormTimeEntryRepository)(nil)
