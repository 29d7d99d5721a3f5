package domain

import (
	"fmt"
	"time"
)

// ProductStatus represents the listing state of a product.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
	StatusSoldOut  ProductStatus = "sold_out"
)

// Valid reports whether s is one of the known listing states. There is no
// transition graph: any authorized update may set any value.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSoldOut:
		return true
	}
	return false
}

// MinimumOrder is the minimum-order-quantity policy on a product.
type MinimumOrder struct {
	Value   float64 `json:"value" bson:"value"`
	Unit    string  `json:"unit" bson:"unit"`
	Enabled bool    `json:"enabled" bson:"enabled"`
}

// NewMinimumOrder normalizes a minimum-order input. When the caller supplied
// an explicit enabled flag (structured form) it wins; otherwise enabled is
// derived as value >= 2. The unit always follows the product's unit.
func NewMinimumOrder(value float64, enabled *bool, unit string) (MinimumOrder, error) {
	if value <= 0 {
		return MinimumOrder{}, fmt.Errorf("%w: minimum order quantity must be greater than zero", ErrInvalidInput)
	}
	on := value >= 2
	if enabled != nil {
		on = *enabled
	}
	return MinimumOrder{Value: value, Unit: unit, Enabled: on}, nil
}

// DefaultMinimumOrder is the policy applied when none is supplied.
func DefaultMinimumOrder(unit string) MinimumOrder {
	return MinimumOrder{Value: 1, Unit: unit, Enabled: false}
}

// ProductImage references a stored media object.
type ProductImage struct {
	URL          string `json:"url" bson:"url"`
	PublicID     string `json:"public_id" bson:"public_id"`
	ResourceType string `json:"resource_type" bson:"resource_type"`
}

// Product is a sellable listing. FarmerID is set at creation and immutable
// afterwards; it drives mutation/deletion authorization together with the
// actor's role.
type Product struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	Name         string         `json:"name" bson:"name"`
	Slug         string         `json:"slug" bson:"slug"`
	Description  string         `json:"description" bson:"description"`
	FarmLocation string         `json:"farm_location" bson:"farm_location"`
	CategoryID   string         `json:"category_id" bson:"category_id"`
	FarmerID     string         `json:"farmer_id" bson:"farmer_id"`
	Quantity     float64        `json:"quantity" bson:"quantity"`
	Unit         string         `json:"unit" bson:"unit"`
	PricePerUnit float64        `json:"price_per_unit" bson:"price_per_unit"`
	MinimumOrder MinimumOrder   `json:"minimum_order_quantity" bson:"minimum_order_quantity"`
	Images       []ProductImage `json:"images" bson:"images"`
	Status       ProductStatus  `json:"status" bson:"status"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// InStock is false when the product is sold out or the quantity is zero,
// regardless of each other.
func (p *Product) InStock() bool {
	if p.Status == StatusSoldOut {
		return false
	}
	return p.Quantity > 0
}

// TotalPrice is the value of the remaining stock.
func (p *Product) TotalPrice() float64 {
	return p.Quantity * p.PricePerUnit
}
