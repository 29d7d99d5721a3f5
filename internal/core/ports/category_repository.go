package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// List returns all categories ordered by creation time descending plus
	// the total count.
	List(ctx context.Context) ([]*domain.Category, int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether a category other than excludeID already
	// holds the slug. excludeID may be empty.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
