package tracking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/tracking"
)

// CategoryService handles category CRUD with per-user, case-insensitive
// name uniqueness
type CategoryService struct {
	categoryRepo tracking.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo tracking.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category unless the name is already used by this user
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := tracking.NewCategory(userID, req.Name, req.Color)
	if err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, userID, category.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name already exists")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update renames or recolors a category
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.findForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	// A rename must not collide with another category of the same user
	if tracking.NormalizeCategoryName(req.Name) != category.NormalizedName() {
		exists, err := s.categoryRepo.ExistsByName(ctx, userID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name already exists")
		}
	}

	if err := category.Update(req.Name, req.Color); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category owned by the user
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	err := s.categoryRepo.Delete(ctx, userID, categoryID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	}
	return err
}

// Get returns one category owned by the user
func (s *CategoryService) Get(ctx context.Context, userID, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.findForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns the user's categories
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}
	return responses, nil
}

// Exists reports whether the user already has a category with this name,
// ignoring case
func (s *CategoryService) Exists(ctx context.Context, userID uuid.UUID, name string) (*CategoryExistsResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return &CategoryExistsResponse{Exists: exists}, nil
}

func (s *CategoryService) findForUser(ctx context.Context, userID, categoryID uuid.UUID) (*tracking.Category, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return category, nil
}
