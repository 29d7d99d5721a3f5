package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// MinimumOrderInput is the raw minimum-order-quantity from the request: a
// bare number arrives with Enabled == nil, the structured form may carry an
// explicit flag.
type MinimumOrderInput struct {
	Value   float64
	Enabled *bool
}

// CreateProductInput carries all data needed to create a listing.
type CreateProductInput struct {
	Name         string
	Description  string
	FarmLocation string
	CategoryID   string
	Unit         string
	Quantity     float64
	PricePerUnit float64
	MinimumOrder *MinimumOrderInput
	Status       string
	Images       []FileUpload
}

// UpdateProductInput is a partial update; nil fields are left untouched.
// Newly uploaded images are appended to the existing list, never replacing
// it. The owning farmer is immutable and deliberately absent here.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	FarmLocation *string
	CategoryID   *string
	Unit         *string
	Quantity     *float64
	PricePerUnit *float64
	MinimumOrder *MinimumOrderInput
	Status       *string
	Images       []FileUpload
}

// ProductService defines the product lifecycle. Mutations take the acting
// user; ownership and role rules are enforced through the domain policy.
type ProductService interface {
	Create(ctx context.Context, actor *domain.User, in CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.Product, error)
}
