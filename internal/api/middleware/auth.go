package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// UserContextKey is the echo context key under which Auth stores the
// resolved account. Downstream middleware and handlers read it from here.
const UserContextKey = "user"

// Auth validates the bearer token and injects the resolved account into the
// request context under UserContextKey. The account is re-read from the
// repository on every request, so a deleted user or a stale role claim fails here
// rather than deep in a handler. All failure modes collapse into the same
// 401 so the response leaks nothing about which check tripped.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return domain.ErrUnauthenticated
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return domain.ErrUnauthenticated
			}

			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				return domain.ErrUnauthenticated
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
