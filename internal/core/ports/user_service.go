package ports

import (
	"context"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

// UpdateUserInput carries the optional fields of a partial update.
// Nil means "leave unchanged".
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService handles listing, retrieving, updating, and deleting accounts,
// enforcing the self-or-admin ownership rules.
type UserService interface {
	ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error)
	GetUser(ctx context.Context, caller *domain.User, targetID string) (*domain.User, error)
	UpdateUser(ctx context.Context, caller *domain.User, targetID string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, caller *domain.User, targetID string) error
}
