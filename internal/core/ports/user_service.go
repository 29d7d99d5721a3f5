package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update; empty fields are left
// untouched.
type UpdateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Phone        string
	FarmName     string
	FarmLocation string
}

// UserService defines use-case operations on user accounts. Mutations take
// the acting user so ownership and admin-override rules can be enforced.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
	// SetRole assigns buyer or farmer; admin is never grantable here.
	SetRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error)
	// UpdateProfileImage replaces the actor's avatar: the previous blob is
	// deleted from storage before the new one is attached.
	UpdateProfileImage(ctx context.Context, actor *domain.User, file FileUpload) (*domain.User, error)
}
