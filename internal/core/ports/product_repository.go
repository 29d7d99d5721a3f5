package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// ProductRepository defines persistence operations for product listings.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// List returns all products ordered by creation time descending plus
	// the total count.
	List(ctx context.Context) ([]*domain.Product, int64, error)
	// ListByCategory returns the products referencing a category, newest
	// first, plus their count.
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, int64, error)
	// CountByCategory reports how many products reference a category; used
	// to guard category deletion.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether a product other than excludeID already
	// holds the slug. excludeID may be empty.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}
