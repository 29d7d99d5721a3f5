package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/api/middleware"
	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// CurrentUser extracts the authenticated account injected by the Auth
// middleware. Its presence proves the middleware ran; routes that reach a
// handler without it are misconfigured, so the failure maps to 401.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
