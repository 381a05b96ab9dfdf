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

const msgEmailTaken = "The email has already been taken."

// AuthService implements registration, login, and logout on top of the user
// repository and the token authority.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenAuthority
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenAuthority, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a new account with the default role and mints its first
// token. Email uniqueness is checked here and enforced again by the store's
// unique index, so a concurrent duplicate still surfaces as a field error.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if input.Password != input.PasswordConfirmation {
		return nil, "", domain.ValidationError{"password": {"The password confirmation does not match."}}
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, "", domain.ValidationError{"email": {msgEmailTaken}}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ValidationError{"email": {msgEmailTaken}}
		}
		return nil, "", err
	}

	token, err := s.tokens.Mint(ctx, created.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials, revokes every existing session for the user,
// and mints a single new token. Unknown email and wrong password yield the
// same error so responses carry no credential oracle.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	// One active session lineage per user: a successful login invalidates
	// every previously issued token.
	if err := s.tokens.RevokeAll(ctx, user.ID); err != nil {
		return "", err
	}

	token, err := s.tokens.Mint(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Logout revokes exactly the token used for the current request. Other
// sessions of the same user stay valid.
func (s *AuthService) Logout(ctx context.Context, caller *domain.User, token string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}

	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", caller.ID).Msg("user logged out")
	return nil
}
