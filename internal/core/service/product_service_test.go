package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

type productFixture struct {
	svc      *ProductService
	products *stubProductRepo
	storage  *stubStorage
	category *domain.Category
	admin    *domain.User
	farmer   *domain.User
	other    *domain.User
	buyer    *domain.User
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	storage := newStubStorage()

	category, err := categories.Create(context.Background(), &domain.Category{Name: "Poultry", Slug: "poultry"})
	if err != nil {
		t.Fatalf("seeding category failed: %v", err)
	}

	return &productFixture{
		svc:      NewProductService(products, categories, storage, nil, zerolog.Nop()),
		products: products,
		storage:  storage,
		category: category,
		admin:    &domain.User{ID: "admin-1", Role: domain.RoleAdmin},
		farmer:   &domain.User{ID: "farmer-1", Role: domain.RoleFarmer},
		other:    &domain.User{ID: "farmer-2", Role: domain.RoleFarmer},
		buyer:    &domain.User{ID: "buyer-1", Role: domain.RoleBuyer},
	}
}

func (f *productFixture) createInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:         "Frozen Chicken",
		Description:  "Whole frozen chicken",
		FarmLocation: "Kaduna",
		CategoryID:   f.category.ID,
		Unit:         "kg",
		Quantity:     50,
		PricePerUnit: 1200,
	}
}

func TestProductService_Create_RoleGating(t *testing.T) {
	f := newProductFixture(t)

	if _, err := f.svc.Create(context.Background(), f.buyer, f.createInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for buyer, got %v", err)
	}

	product, err := f.svc.Create(context.Background(), f.farmer, f.createInput())
	if err != nil {
		t.Fatalf("farmer create failed: %v", err)
	}
	if product.FarmerID != f.farmer.ID {
		t.Fatalf("expected owner %q, got %q", f.farmer.ID, product.FarmerID)
	}
	if product.Slug != "frozen-chicken" {
		t.Fatalf("expected slug frozen-chicken, got %q", product.Slug)
	}
	if product.Status != domain.StatusActive {
		t.Fatalf("expected default status active, got %q", product.Status)
	}

	_, count, err := f.svc.List(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("expected list count 1, got %d (err %v)", count, err)
	}
}

func TestProductService_Create_SlugCollisionDisambiguated(t *testing.T) {
	f := newProductFixture(t)

	first, err := f.svc.Create(context.Background(), f.farmer, f.createInput())
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := f.svc.Create(context.Background(), f.other, f.createInput())
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Fatalf("expected disambiguated slug, both %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "frozen-chicken-") {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	f := newProductFixture(t)
	in := f.createInput()
	in.CategoryID = "cat-missing"
	if _, err := f.svc.Create(context.Background(), f.farmer, in); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	f := newProductFixture(t)

	in := f.createInput()
	in.PricePerUnit = 0
	if _, err := f.svc.Create(context.Background(), f.farmer, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero price, got %v", err)
	}

	in = f.createInput()
	in.Name = ""
	if _, err := f.svc.Create(context.Background(), f.farmer, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}

	in = f.createInput()
	in.Status = "retired"
	if _, err := f.svc.Create(context.Background(), f.farmer, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad status, got %v", err)
	}
}

func TestProductService_Create_MinimumOrderNormalization(t *testing.T) {
	f := newProductFixture(t)

	in := f.createInput()
	in.MinimumOrder = &ports.MinimumOrderInput{Value: 5}
	product, err := f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.MinimumOrder.Value != 5 || !product.MinimumOrder.Enabled {
		t.Fatalf("bare 5: expected value=5 enabled=true, got %+v", product.MinimumOrder)
	}
	if product.MinimumOrder.Unit != "kg" {
		t.Fatalf("expected minimum order unit to follow product unit, got %q", product.MinimumOrder.Unit)
	}

	in = f.createInput()
	in.Name = "Frozen Turkey"
	in.MinimumOrder = &ports.MinimumOrderInput{Value: 1}
	product, err = f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.MinimumOrder.Value != 1 || product.MinimumOrder.Enabled {
		t.Fatalf("bare 1: expected value=1 enabled=false, got %+v", product.MinimumOrder)
	}

	in = f.createInput()
	in.Name = "Smoked Chicken"
	disabled := false
	in.MinimumOrder = &ports.MinimumOrderInput{Value: 10, Enabled: &disabled}
	product, err = f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.MinimumOrder.Enabled {
		t.Fatalf("explicit enabled=false must win over the value threshold")
	}
}

func TestProductService_Create_UploadsConcurrentlyAndAtomically(t *testing.T) {
	f := newProductFixture(t)

	in := f.createInput()
	in.Images = []ports.FileUpload{
		{Filename: "front.jpg", ContentType: "image/jpeg", Size: 3, Content: []byte{0xff, 0xd8, 0xff}},
		{Filename: "back.png", ContentType: "image/png", Size: 3, Content: []byte{0x89, 0x50, 0x4e}},
	}
	product, err := f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create with images failed: %v", err)
	}
	if len(product.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(product.Images))
	}
	for _, img := range product.Images {
		if img.URL == "" || img.PublicID == "" || img.ResourceType == "" {
			t.Fatalf("incomplete image record: %+v", img)
		}
	}

	// One failing upload fails the whole create and leaves no orphan blobs.
	f.storage.failUpload["bad"] = true
	in = f.createInput()
	in.Name = "Chicken Wings"
	in.Images = []ports.FileUpload{
		{Filename: "good.jpg", ContentType: "image/jpeg", Size: 1, Content: []byte{1}},
		{Filename: "bad.jpg", ContentType: "image/jpeg", Size: 1, Content: []byte{2}},
	}
	if _, err := f.svc.Create(context.Background(), f.farmer, in); !errors.Is(err, domain.ErrMediaStorage) {
		t.Fatalf("expected ErrMediaStorage, got %v", err)
	}
	if _, err := f.svc.GetBySlug(context.Background(), "chicken-wings"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected no record persisted after failed upload, got %v", err)
	}
	if f.storage.stored() != 2 {
		t.Fatalf("expected orphan blob from failed batch to be cleaned up, %d objects stored", f.storage.stored())
	}
}

func TestProductService_Update_OwnershipEnforced(t *testing.T) {
	f := newProductFixture(t)

	product, err := f.svc.Create(context.Background(), f.farmer, f.createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quantity := 10.0
	if _, err := f.svc.Update(context.Background(), f.other, product.ID, ports.UpdateProductInput{Quantity: &quantity}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owning farmer, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.admin, product.ID, ports.UpdateProductInput{Quantity: &quantity})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %v", updated.Quantity)
	}
	if updated.FarmerID != f.farmer.ID {
		t.Fatalf("farmer reference must be immutable, got %q", updated.FarmerID)
	}
}

func TestProductService_Update_SlugRecomputedOnlyOnNameChange(t *testing.T) {
	f := newProductFixture(t)

	product, err := f.svc.Create(context.Background(), f.farmer, f.createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	desc := "Updated description"
	updated, err := f.svc.Update(context.Background(), f.farmer, product.ID, ports.UpdateProductInput{Description: &desc})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != product.Slug {
		t.Fatalf("slug must not change when name unchanged")
	}

	name := "Fresh Chicken"
	updated, err = f.svc.Update(context.Background(), f.farmer, product.ID, ports.UpdateProductInput{Name: &name})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.Slug != "fresh-chicken" {
		t.Fatalf("expected recomputed slug fresh-chicken, got %q", updated.Slug)
	}
}

func TestProductService_Update_AppendsImages(t *testing.T) {
	f := newProductFixture(t)

	in := f.createInput()
	in.Images = []ports.FileUpload{{Filename: "front.jpg", ContentType: "image/jpeg", Size: 1, Content: []byte{1}}}
	product, err := f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.farmer, product.ID, ports.UpdateProductInput{
		Images: []ports.FileUpload{{Filename: "side.jpg", ContentType: "image/jpeg", Size: 1, Content: []byte{2}}},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("expected images appended, got %d", len(updated.Images))
	}
	if updated.Images[0].PublicID != product.Images[0].PublicID {
		t.Fatalf("existing images must be preserved")
	}
}

func TestProductService_Delete_AbortsWhenImageDeletionFails(t *testing.T) {
	f := newProductFixture(t)

	in := f.createInput()
	in.Images = []ports.FileUpload{{Filename: "front.jpg", ContentType: "image/jpeg", Size: 1, Content: []byte{1}}}
	product, err := f.svc.Create(context.Background(), f.farmer, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	f.storage.failDelete = true
	if _, err := f.svc.Delete(context.Background(), f.farmer, product.ID); !errors.Is(err, domain.ErrMediaStorage) {
		t.Fatalf("expected ErrMediaStorage, got %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), product.ID); err != nil {
		t.Fatalf("record must survive a failed image deletion, got %v", err)
	}

	f.storage.failDelete = false
	if _, err := f.svc.Delete(context.Background(), f.farmer, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected record removed, got %v", err)
	}
	if f.storage.stored() != 0 {
		t.Fatalf("expected all blobs removed with the record")
	}
}

func TestProductService_Delete_OwnershipEnforced(t *testing.T) {
	f := newProductFixture(t)

	product, err := f.svc.Create(context.Background(), f.farmer, f.createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.svc.Delete(context.Background(), f.other, product.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Delete(context.Background(), f.admin, product.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}
