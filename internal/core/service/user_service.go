package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmarket/farmarket-api/internal/core/domain"
	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// UserService implements account reads, self/admin mutations, role
// assignment, and profile image replacement.
type UserService struct {
	users   ports.UserRepository
	storage ports.MediaStorage // optional; profile images rejected when absent
	policy  domain.Policy
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, storage ports.MediaStorage, logger zerolog.Logger) *UserService {
	return &UserService{users: users, storage: storage, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial account update for self or by admin override.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !s.policy.CanManageUser(actor, id) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		user.FirstName = strings.TrimSpace(in.FirstName)
	}
	if in.LastName != "" {
		user.LastName = strings.TrimSpace(in.LastName)
	}
	if in.Email != "" {
		email := NormalizeEmail(in.Email)
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailTaken
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Phone != "" {
		user.Phone = strings.TrimSpace(in.Phone)
	}
	if in.FarmName != "" {
		user.FarmName = strings.TrimSpace(in.FarmName)
	}
	if in.FarmLocation != "" {
		user.FarmLocation = strings.TrimSpace(in.FarmLocation)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account (self or admin).
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if !s.policy.CanManageUser(actor, id) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return user, nil
}

// SetRole assigns buyer or farmer to an account; admin-only, and admin is
// never grantable.
func (s *UserService) SetRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
	if !s.policy.CanAdminister(actor) {
		return nil, domain.ErrForbidden
	}
	assignable := false
	for _, r := range domain.AssignableRoles {
		if role == r {
			assignable = true
			break
		}
	}
	if !assignable {
		return nil, fmt.Errorf("%w: role must be buyer or farmer", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", role).Msg("role updated")
	return user, nil
}

// UpdateProfileImage replaces the actor's avatar. The new file is uploaded
// and attached first; the replaced blob is removed only after the record is
// updated, so the record never points at a deleted object.
func (s *UserService) UpdateProfileImage(ctx context.Context, actor *domain.User, file ports.FileUpload) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if len(file.Content) == 0 {
		return nil, fmt.Errorf("%w: profile image file is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, fmt.Errorf("%w: profile image must be an image file", domain.ErrInvalidInput)
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: media storage not configured", domain.ErrMediaStorage)
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	media, err := s.storage.Upload(ctx, mediaPublicID(file.Filename), file.ContentType, bytes.NewReader(file.Content), file.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaStorage, err)
	}

	var previous string
	if user.ProfileImage != nil {
		previous = user.ProfileImage.PublicID
	}

	user.ProfileImage = &domain.ProfileImage{URL: media.URL, PublicID: media.PublicID}
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		if derr := s.storage.Delete(ctx, []string{media.PublicID}); derr != nil {
			s.logger.Warn().Err(derr).Str("public_id", media.PublicID).Msg("failed to clean up unattached profile image")
		}
		return nil, err
	}

	if previous != "" {
		if err := s.storage.Delete(ctx, []string{previous}); err != nil {
			s.logger.Warn().Err(err).Str("public_id", previous).Msg("failed to remove replaced profile image")
		}
	}
	return user, nil
}
