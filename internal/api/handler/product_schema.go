package handler

import (
	"time"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// Response-only types owned by the transport layer. Separate from the
// domain structs so the JSON contract stays stable when internals move,
// and so derived fields (in_stock, total_price) have a home.

type minimumOrderResponse struct {
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Enabled bool    `json:"enabled"`
}

type productImageResponse struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

type productResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	FarmLocation string                 `json:"farm_location"`
	CategoryID   string                 `json:"category_id"`
	FarmerID     string                 `json:"farmer_id"`
	Quantity     float64                `json:"quantity"`
	Unit         string                 `json:"unit"`
	PricePerUnit float64                `json:"price_per_unit"`
	MinimumOrder minimumOrderResponse   `json:"minimum_order_quantity"`
	Images       []productImageResponse `json:"images"`
	Status       string                 `json:"status"`
	InStock      bool                   `json:"in_stock"`
	TotalPrice   float64                `json:"total_price"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	images := make([]productImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = productImageResponse{
			URL:          img.URL,
			PublicID:     img.PublicID,
			ResourceType: img.ResourceType,
		}
	}

	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		FarmLocation: p.FarmLocation,
		CategoryID:   p.CategoryID,
		FarmerID:     p.FarmerID,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		PricePerUnit: p.PricePerUnit,
		MinimumOrder: minimumOrderResponse{
			Value:   p.MinimumOrder.Value,
			Unit:    p.MinimumOrder.Unit,
			Enabled: p.MinimumOrder.Enabled,
		},
		Images:     images,
		Status:     string(p.Status),
		InStock:    p.InStock(),
		TotalPrice: p.TotalPrice(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}
