package tracking

import (
	"regexp"
	"strings"
	"time"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Category groups time entries for a single user. Names are unique per user
// without regard to case.
type Category struct {
	shared.BaseEntity
	UserID uuid.UUID
	Name   string
	Color  string
}

// TableName returns the database table name
func (Category) TableName() string {
	return "categories"
}

var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NewCategory creates a new category for a user
func NewCategory(userID uuid.UUID, name, color string) (*Category, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       strings.TrimSpace(name),
		Color:      color,
	}, nil
}

// Update changes the category's name and color
func (c *Category) Update(name, color string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateColor(color); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Color = color
	c.UpdatedAt = time.Now()
	return nil
}

// NormalizedName returns the case-folded form used for uniqueness checks
func (c *Category) NormalizedName() string {
	return NormalizeCategoryName(c.Name)
}

// NormalizeCategoryName case-folds a category name for comparison
func NormalizeCategoryName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #aabbcc")
	}
	return nil
}
