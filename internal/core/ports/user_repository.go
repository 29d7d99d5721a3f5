package ports

import (
	"context"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations never return the password hash unless the operation
// requires it (login); API layers rely on domain.User's serialization
// excluding it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by case-normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
