package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthq/accounts-api/internal/core/domain"
	"github.com/accounthq/accounts-api/internal/core/ports"
)

// UserService implements listing, retrieval, partial update, and deletion of
// accounts. Ownership rules: get and update allow self or admin, listing and
// deletion are admin only. The delete asymmetry (admins only, even for the
// caller's own account) is part of the contract.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{Reason: "Unauthorized to view all users"}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("actor", caller.ID).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, caller *domain.User, targetID string) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if caller.ID != user.ID && !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{Reason: "Unauthorized to view this user"}
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, caller *domain.User, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if targetID == "" {
		return nil, domain.ValidationError{"id": {"The id field is required."}}
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if caller.ID != user.ID && !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{Reason: "Unauthorized to update this account"}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		// Uniqueness excludes the target's own current row; the store's
		// unique index is the final arbiter under concurrency.
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ValidationError{"email": {msgEmailTaken}}
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ValidationError{"email": {msgEmailTaken}}
		}
		s.logger.Error().Err(err).Str("actor", caller.ID).Str("target", targetID).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("actor", caller.ID).Str("target", targetID).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, caller *domain.User, targetID string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if targetID == "" {
		return domain.ValidationError{"id": {"The id field is required."}}
	}
	if !caller.IsAdmin() {
		return &domain.AccessDeniedError{Reason: "Unauthorized to delete this account"}
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		s.logger.Error().Err(err).Str("actor", caller.ID).Str("target", targetID).Msg("failed to delete user")
		return err
	}

	s.logger.Info().Str("actor", caller.ID).Str("target", targetID).Msg("user deleted")
	return nil
}
