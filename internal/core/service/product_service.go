package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// ProductService implements the product lifecycle: role/ownership gating,
// slug derivation with disambiguation, minimum-order normalization, and
// media attachment through the external storage collaborator.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	storage    ports.MediaStorage // optional; uploads rejected when absent
	slugs      SlugReserver       // optional
	policy     domain.Policy
	logger     zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	storage ports.MediaStorage,
	slugs SlugReserver,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		storage:    storage,
		slugs:      slugs,
		logger:     logger,
	}
}

// Create validates input, resolves the category, derives a slug (appending a
// short random suffix on collision), uploads all images concurrently, and
// persists the listing with the acting user as the immutable owner.
func (s *ProductService) Create(ctx context.Context, actor *domain.User, in ports.CreateProductInput) (*domain.Product, error) {
	if !s.policy.CanCreateProduct(actor) {
		return nil, domain.ErrForbidden
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	status := domain.StatusActive
	if in.Status != "" {
		status = domain.ProductStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: product status must be one of active, inactive, sold_out", domain.ErrInvalidInput)
		}
	}

	moq := domain.DefaultMinimumOrder(in.Unit)
	if in.MinimumOrder != nil {
		var err error
		moq, err = domain.NewMinimumOrder(in.MinimumOrder.Value, in.MinimumOrder.Enabled, in.Unit)
		if err != nil {
			return nil, err
		}
	}

	slug, err := s.deriveSlug(ctx, in.Name, "")
	if err != nil {
		return nil, err
	}

	images, err := s.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:         in.Name,
		Slug:         slug,
		Description:  in.Description,
		FarmLocation: in.FarmLocation,
		CategoryID:   in.CategoryID,
		FarmerID:     actor.ID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		MinimumOrder: moq,
		Images:       images,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.cleanupImages(ctx, images)
		return nil, err
	}

	s.logger.Info().
		Str("slug", created.Slug).
		Str("farmer_id", created.FarmerID).
		Int("images", len(created.Images)).
		Msg("product created")

	return created, nil
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, int64, error) {
	return s.products.List(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug not provided", domain.ErrInvalidInput)
	}
	return s.products.FindBySlug(ctx, slug)
}

// Update applies a partial mutation. Only the owning farmer or an admin may
// call it; the slug is re-derived only when the name changes (with the same
// disambiguation-on-collision policy) and new images are appended to the
// existing list. The farmer reference is never touched.
func (s *ProductService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanMutateProduct(actor, product.FarmerID) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil && *in.Name != "" && *in.Name != product.Name {
		slug, err := s.deriveSlug(ctx, *in.Name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Name = *in.Name
		product.Slug = slug
	}
	if in.Description != nil && *in.Description != "" {
		product.Description = *in.Description
	}
	if in.FarmLocation != nil && *in.FarmLocation != "" {
		product.FarmLocation = *in.FarmLocation
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Unit != nil && *in.Unit != "" {
		product.Unit = *in.Unit
		product.MinimumOrder.Unit = *in.Unit
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
		}
		product.Quantity = *in.Quantity
	}
	if in.PricePerUnit != nil {
		if *in.PricePerUnit <= 0 {
			return nil, fmt.Errorf("%w: price per unit must be greater than zero", domain.ErrInvalidInput)
		}
		product.PricePerUnit = *in.PricePerUnit
	}
	if in.MinimumOrder != nil {
		moq, err := domain.NewMinimumOrder(in.MinimumOrder.Value, in.MinimumOrder.Enabled, product.Unit)
		if err != nil {
			return nil, err
		}
		product.MinimumOrder = moq
	}
	if in.Status != nil && *in.Status != "" {
		status := domain.ProductStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: product status must be one of active, inactive, sold_out", domain.ErrInvalidInput)
		}
		product.Status = status
	}

	if len(in.Images) > 0 {
		uploaded, err := s.uploadAll(ctx, in.Images)
		if err != nil {
			return nil, err
		}
		product.Images = append(product.Images, uploaded...)
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a listing. All stored images are deleted through the media
// collaborator first; any failure there aborts the record deletion so blobs
// and record are removed together or not at all.
func (s *ProductService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanMutateProduct(actor, product.FarmerID) {
		return nil, domain.ErrForbidden
	}

	publicIDs := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		if img.PublicID != "" {
			publicIDs = append(publicIDs, img.PublicID)
		}
	}
	if len(publicIDs) > 0 {
		if s.storage == nil {
			return nil, fmt.Errorf("%w: media storage not configured", domain.ErrMediaStorage)
		}
		if err := s.storage.Delete(ctx, publicIDs); err != nil {
			s.logger.Error().Err(err).Str("product_id", id).Msg("image deletion failed, product not deleted")
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaStorage, err)
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", product.Slug).Str("farmer_id", product.FarmerID).Msg("product deleted")
	return product, nil
}

// deriveSlug computes the slug for name and disambiguates with a random
// suffix when another product already holds it.
func (s *ProductService) deriveSlug(ctx context.Context, name, excludeID string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("%w: product name must contain letters or digits", domain.ErrInvalidInput)
	}

	taken, err := s.products.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if !taken && s.slugs != nil {
		ok, err := s.slugs.Reserve(ctx, "product", slug)
		if err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("slug reservation failed, relying on unique index")
		} else if !ok {
			taken = true
		}
	}
	if taken {
		slug = DisambiguateSlug(slug)
	}
	return slug, nil
}

// uploadAll fans out one upload goroutine per file and awaits them jointly.
// A single failure fails the whole batch; blobs that did make it are
// best-effort removed so no partial image set leaks.
func (s *ProductService) uploadAll(ctx context.Context, files []ports.FileUpload) ([]domain.ProductImage, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: media storage not configured", domain.ErrMediaStorage)
	}

	images := make([]domain.ProductImage, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f ports.FileUpload) {
			defer wg.Done()
			media, err := s.storage.Upload(ctx, mediaPublicID(f.Filename), f.ContentType, bytes.NewReader(f.Content), f.Size)
			if err != nil {
				errs[i] = err
				return
			}
			images[i] = domain.ProductImage{
				URL:          media.URL,
				PublicID:     media.PublicID,
				ResourceType: media.ResourceType,
			}
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.cleanupImages(ctx, images)
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaStorage, err)
		}
	}
	return images, nil
}

func (s *ProductService) cleanupImages(ctx context.Context, images []domain.ProductImage) {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	if len(ids) == 0 || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, ids); err != nil {
		s.logger.Warn().Err(err).Strs("public_ids", ids).Msg("failed to clean up uploaded images")
	}
}

// mediaPublicID builds a storage identifier from the original file name plus
// a random 8-character suffix.
func mediaPublicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "upload"
	}
	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func validateCreate(in ports.CreateProductInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	case in.Description == "":
		return fmt.Errorf("%w: product description is required", domain.ErrInvalidInput)
	case in.FarmLocation == "":
		return fmt.Errorf("%w: farm location is required", domain.ErrInvalidInput)
	case in.CategoryID == "":
		return fmt.Errorf("%w: product category is required", domain.ErrInvalidInput)
	case in.Unit == "":
		return fmt.Errorf("%w: product unit is required", domain.ErrInvalidInput)
	case in.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	case in.PricePerUnit <= 0:
		return fmt.Errorf("%w: price per unit must be greater than zero", domain.ErrInvalidInput)
	}
	return nil
}
