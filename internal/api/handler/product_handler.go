package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/api/metrics"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// ProductHandler handles product listing endpoints. Reads are public;
// mutations require authentication and run through the domain policy.
type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a product listing. Farmers and admins only; the listing is
// owned by the creating farmer.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name                    formData  string  true   "Product name"
// @Param        description             formData  string  true   "Description"
// @Param        farm_location           formData  string  true   "Farm location"
// @Param        category                formData  string  true   "Category id"
// @Param        unit                    formData  string  true   "Unit of sale (e.g. kg)"
// @Param        quantity                formData  number  true   "Available quantity"
// @Param        price_per_unit          formData  number  true   "Price per unit"
// @Param        minimum_order_quantity  formData  string  false  "Bare number or JSON object"
// @Param        status                  formData  string  false  "active, inactive or sold_out"
// @Param        images                  formData  file    false  "Image files"
// @Success      201  {object}  response
// @Failure      400  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	in := ports.CreateProductInput{}
	in.Name, _ = formValue(c, "name")
	in.Description, _ = formValue(c, "description")
	in.FarmLocation, _ = formValue(c, "farm_location")
	in.CategoryID, _ = formValue(c, "category")
	in.Unit, _ = formValue(c, "unit")
	in.Status, _ = formValue(c, "status")

	quantity, ok, err := formFloat(c, "quantity")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}
	in.Quantity = quantity

	price, ok, err := formFloat(c, "price_per_unit")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_unit is required")
	}
	in.PricePerUnit = price

	if in.MinimumOrder, err = parseMinimumOrder(c); err != nil {
		return err
	}
	if in.Images, err = formImages(c); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(string(product.Status)).Inc()
	if n := len(product.Images); n > 0 {
		metrics.MediaUploadsTotal.WithLabelValues("product").Add(float64(n))
	}
	return c.JSON(http.StatusCreated, newResponse("product created", toProductResponse(product)))
}

// List returns all products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  response
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, count, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse("products retrieved", count, toProductResponses(products)))
}

// Get returns one product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  response
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("product retrieved", toProductResponse(product)))
}

// GetBySlug returns one product by slug.
//
// @Summary      Get a product by slug
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  response
// @Failure      404   {object}  api.errorResponse
// @Router       /api/v1/products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	product, err := h.productService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("product retrieved", toProductResponse(product)))
}

// Update applies a partial update to a listing. Only fields present in the
// form change; new images are appended. Owner or admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  response
// @Failure      400  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	in := ports.UpdateProductInput{}
	if v, ok := formValue(c, "name"); ok {
		in.Name = &v
	}
	if v, ok := formValue(c, "description"); ok {
		in.Description = &v
	}
	if v, ok := formValue(c, "farm_location"); ok {
		in.FarmLocation = &v
	}
	if v, ok := formValue(c, "category"); ok {
		in.CategoryID = &v
	}
	if v, ok := formValue(c, "unit"); ok {
		in.Unit = &v
	}
	if v, ok := formValue(c, "status"); ok {
		in.Status = &v
	}
	if v, ok, err := formFloat(c, "quantity"); err != nil {
		return err
	} else if ok {
		in.Quantity = &v
	}
	if v, ok, err := formFloat(c, "price_per_unit"); err != nil {
		return err
	} else if ok {
		in.PricePerUnit = &v
	}
	if in.MinimumOrder, err = parseMinimumOrder(c); err != nil {
		return err
	}
	if in.Images, err = formImages(c); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}

	if n := len(in.Images); n > 0 {
		metrics.MediaUploadsTotal.WithLabelValues("product").Add(float64(n))
	}
	return c.JSON(http.StatusOK, newResponse("product updated", toProductResponse(product)))
}

// Delete removes a listing and its stored images. Owner or admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  response
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Delete(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("product deleted", toProductResponse(product)))
}
