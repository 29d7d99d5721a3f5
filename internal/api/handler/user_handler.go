package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/api/metrics"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// UserHandler handles account management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateUserRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"         validate:"omitempty,email"`
	Password     string `json:"password"      validate:"omitempty,min=6"`
	Phone        string `json:"phone"`
	FarmName     string `json:"farm_name"`
	FarmLocation string `json:"farm_location"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer farmer"`
}

// Me returns the caller's own account.
//
// @Summary      Own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  api.errorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("user retrieved", user))
}

// List returns all accounts. Admin only.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse("users retrieved", int64(len(users)), users))
}

// Get returns a single account by id.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("user retrieved", user))
}

// Update applies a partial update. Allowed for the account owner or an
// admin.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  response
// @Failure      403   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Failure      409   {object}  api.errorResponse
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		FarmName:     req.FarmName,
		FarmLocation: req.FarmLocation,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("user updated", user))
}

// Delete removes an account. Allowed for the account owner or an admin.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response
// @Failure      403  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Delete(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("user deleted", user))
}

// SetRole assigns buyer or farmer to an account. Admin only; the admin role
// itself is never grantable through the API.
//
// @Summary      Set account role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  response
// @Failure      400   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /api/v1/users/{id}/role [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.SetRole(c.Request().Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newResponse("role updated", user))
}

// UpdateProfileImage replaces the caller's avatar. The previous blob is
// removed from storage before the new one is attached.
//
// @Summary      Update profile image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profileImage  formData  file  true  "Image file"
// @Success      200  {object}  response
// @Failure      400  {object}  api.errorResponse
// @Failure      401  {object}  api.errorResponse
// @Router       /api/v1/users/me/profile/image [patch]
func (h *UserHandler) UpdateProfileImage(c echo.Context) error {
	actor, err := CurrentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("profileImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "profileImage file is required")
	}

	file, err := readUpload(fh)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateProfileImage(c.Request().Context(), actor, file)
	if err != nil {
		return err
	}

	metrics.MediaUploadsTotal.WithLabelValues("profile").Inc()
	return c.JSON(http.StatusOK, newResponse("profile image updated", user))
}
