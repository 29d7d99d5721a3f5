package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// CategoryHandler handles the category taxonomy endpoints. Reads are
// public; mutations are admin-gated in the router.
type CategoryHandler struct {
	categoryService ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create adds a category. Admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  response
// @Failure      400   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      409   {object}  api.errorResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newResponse("category created", category))
}

// List returns all categories, newest first.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, count, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse("categories retrieved", count, categories))
}

// Get returns one category by id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  response
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categoryService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("category retrieved", category))
}

// GetBySlug returns one category by slug.
//
// @Summary      Get a category by slug
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  response
// @Failure      404   {object}  api.errorResponse
// @Router       /api/v1/categories/slug/{slug} [get]
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	category, err := h.categoryService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("category retrieved", category))
}

// Products lists the products under a category, newest first.
//
// @Summary      List products in a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  response
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/categories/{id}/products [get]
func (h *CategoryHandler) Products(c echo.Context) error {
	products, count, err := h.categoryService.Products(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse("products retrieved", count, toProductResponses(products)))
}

// Update renames a category. Admin only; the slug follows the name.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "New name"
// @Success      200   {object}  response
// @Failure      403   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Failure      409   {object}  api.errorResponse
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("category updated", category))
}

// Delete removes a category. Admin only; rejected while products still
// reference it.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  response
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Failure      409  {object}  api.errorResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	category, err := h.categoryService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("category deleted", category))
}
