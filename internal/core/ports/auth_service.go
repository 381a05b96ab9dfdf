package ports

import (
	"context"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by account registration.
// Format validation happens at the transport layer; the service re-checks
// invariants that depend on store state (email uniqueness).
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, caller *domain.User, token string) error
}
