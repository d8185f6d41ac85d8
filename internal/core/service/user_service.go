package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	return s.repo.FindByID(ctx, actor.UserID)
}

// UpdateProfile applies a partial update to the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Principal, in ports.UpdateProfileInput) (*domain.User, error) {
	patch := domain.ProfilePatch{
		Name:   in.Name,
		Phone:  in.Phone,
		Avatar: in.Avatar,
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.NewValidationError("name cannot be empty")
	}

	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.NewValidationError("email cannot be empty")
		}
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != actor.UserID:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update profile lookup: %w", err)
		}
		patch.Email = &email
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.NewValidationError("password cannot be empty")
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	return s.repo.UpdateProfile(ctx, actor.UserID, patch)
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.Principal) ([]*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// DeleteUser removes an account. Accounts that still own bookings are kept
// and should be deactivated instead.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Principal, id string) error {
	if !actor.CanManageUsers() {
		return domain.ErrForbidden
	}
	if id == actor.UserID {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("actor_id", actor.UserID).Msg("user deleted")
	return nil
}

func (s *UserService) SetUserActive(ctx context.Context, actor domain.Principal, id string, active bool) (*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	if id == actor.UserID && !active {
		return nil, domain.NewValidationError("admins cannot deactivate their own account")
	}
	user, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Bool("active", active).Str("actor_id", actor.UserID).Msg("user status changed")
	return user, nil
}
