package tracking

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// Update updates an existing category
	Update(ctx context.Context, category *Category) error

	// Delete deletes a category owned by the user
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// FindByIDForUser finds a category by ID scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Category, error)

	// FindAllForUser returns the user's categories, newest first
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)

	// ExistsByName checks for a category with the same name, ignoring case
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
