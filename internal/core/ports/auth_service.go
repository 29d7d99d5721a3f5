package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// SignupInput carries the fields accepted at account creation. Role is not
// part of it: every signup starts as a buyer.
type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	FarmName        string
	FarmLocation    string
	Phone           string
}

// AuthService implements signup and login, returning a signed token plus the
// created/authenticated user.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
