package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// CategoryService defines the category lifecycle. Mutations are admin-only;
// the role gate lives in the routing layer (RBAC middleware).
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// Products lists the products referencing a category, newest first.
	Products(ctx context.Context, id string) ([]*domain.Product, int64, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	// Delete removes a category; rejected with a conflict while products
	// still reference it.
	Delete(ctx context.Context, id string) (*domain.Category, error)
}
