package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

func newCategoryService(categories *stubCategoryRepo, products *stubProductRepo) *CategoryService {
	return NewCategoryService(categories, products, nil, zerolog.Nop())
}

func TestCategoryService_Create_DerivesSlug(t *testing.T) {
	svc := newCategoryService(newStubCategoryRepo(), newStubProductRepo())

	category, err := svc.Create(context.Background(), "Root Crops")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.Slug != "root-crops" {
		t.Fatalf("expected slug root-crops, got %q", category.Slug)
	}
	if category.ID == "" {
		t.Fatalf("expected created record to carry an id")
	}
}

func TestCategoryService_Create_Conflict(t *testing.T) {
	svc := newCategoryService(newStubCategoryRepo(), newStubProductRepo())

	if _, err := svc.Create(context.Background(), "Root Crops"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "Root Crops"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryService_Create_MissingName(t *testing.T) {
	svc := newCategoryService(newStubCategoryRepo(), newStubProductRepo())
	if _, err := svc.Create(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryService_Update_SlugCollisionWithOtherRecord(t *testing.T) {
	svc := newCategoryService(newStubCategoryRepo(), newStubProductRepo())

	if _, err := svc.Create(context.Background(), "Poultry"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	grains, err := svc.Create(context.Background(), "Grains")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), grains.ID, "Poultry"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on rename collision, got %v", err)
	}

	updated, err := svc.Update(context.Background(), grains.ID, "Whole Grains")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.Slug != "whole-grains" {
		t.Fatalf("expected recomputed slug whole-grains, got %q", updated.Slug)
	}
}

func TestCategoryService_Delete_RejectedWhileReferenced(t *testing.T) {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	svc := newCategoryService(categories, products)

	category, err := svc.Create(context.Background(), "Poultry")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = products.Create(context.Background(), &domain.Product{
		Name:       "Frozen Chicken",
		Slug:       "frozen-chicken",
		CategoryID: category.ID,
		FarmerID:   "farmer-1",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seeding product failed: %v", err)
	}

	if _, err := svc.Delete(context.Background(), category.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	empty, err := svc.Create(context.Background(), "Dairy")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Delete(context.Background(), empty.ID); err != nil {
		t.Fatalf("expected delete of unreferenced category to succeed, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), empty.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected category to be gone, got %v", err)
	}
}

func TestCategoryService_List_NewestFirstWithCount(t *testing.T) {
	svc := newCategoryService(newStubCategoryRepo(), newStubProductRepo())

	for _, name := range []string{"Poultry", "Dairy", "Grains"} {
		if _, err := svc.Create(context.Background(), name); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
		time.Sleep(time.Millisecond)
	}

	categories, count, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if count != 3 || len(categories) != 3 {
		t.Fatalf("expected 3 categories, got count=%d len=%d", count, len(categories))
	}
	if categories[0].Slug != "grains" {
		t.Fatalf("expected newest category first, got %q", categories[0].Slug)
	}
}
