package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// SlugReserver narrows the window between the uniqueness check and the
// insert for concurrent creates deriving the same slug (Redis SETNX). The
// unique index remains the final authority; reservation failures on the
// store side are logged and ignored.
type SlugReserver interface {
	Reserve(ctx context.Context, kind, slug string) (bool, error)
	Release(ctx context.Context, kind, slug string) error
}

// CategoryService implements the category lifecycle.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	slugs      SlugReserver // optional
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, slugs SlugReserver, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, slugs: slugs, logger: logger}
}

// Create derives the slug from the name and rejects with a conflict when it
// is already taken.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrInvalidInput)
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: category name must contain letters or digits", domain.ErrInvalidInput)
	}

	exists, err := s.categories.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrCategoryExists
	}

	if !s.reserveSlug(ctx, "category", slug) {
		return nil, domain.ErrCategoryExists
	}

	now := time.Now().UTC()
	created, err := s.categories.Create(ctx, &domain.Category{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.releaseSlug(ctx, "category", slug)
		return nil, err
	}

	s.logger.Info().Str("slug", slug).Msg("category created")
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, int64, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug not provided", domain.ErrInvalidInput)
	}
	return s.categories.FindBySlug(ctx, slug)
}

// Products lists the products referencing a category, newest first.
func (s *CategoryService) Products(ctx context.Context, id string) ([]*domain.Product, int64, error) {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.products.ListByCategory(ctx, id)
}

// Update recomputes the slug only when the name changed; a collision with a
// different record is a conflict, not a disambiguation.
func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrInvalidInput)
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != category.Name {
		slug := Slugify(name)
		if slug != category.Slug {
			exists, err := s.categories.SlugExists(ctx, slug, category.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrCategoryExists
			}
			category.Slug = slug
		}
		category.Name = name
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless products still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", category.Slug).Msg("category deleted")
	return category, nil
}

// reserveSlug returns false only when another in-flight create holds the
// reservation. Store errors degrade to index-only safety.
func (s *CategoryService) reserveSlug(ctx context.Context, kind, slug string) bool {
	if s.slugs == nil {
		return true
	}
	ok, err := s.slugs.Reserve(ctx, kind, slug)
	if err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("slug reservation failed, relying on unique index")
		return true
	}
	return ok
}

func (s *CategoryService) releaseSlug(ctx context.Context, kind, slug string) {
	if s.slugs == nil {
		return
	}
	if err := s.slugs.Release(ctx, kind, slug); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("slug release failed")
	}
}
