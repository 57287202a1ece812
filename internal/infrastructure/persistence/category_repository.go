package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements tracking.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *tracking.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates an existing category
func (r *GormCategoryRepository) Update(ctx context.Context, category *tracking.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category owned by the user
func (r *GormCategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&tracking.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForUser finds a category by ID scoped to its owner
func (r *GormCategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*tracking.Category, error) {
	var category tracking.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAllForUser returns the user's categories, newest first
func (r *GormCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*tracking.Category, error) {
	var categories []*tracking.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ExistsByName checks for a category with the same name, ignoring case
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&tracking.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, strings.TrimSpace(name)).
		Count(&count).Error
	return count > 0, err
}

var _ tracking.CategoryRepository = (*GormCategoryRepository)(nil)
