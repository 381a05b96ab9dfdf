package ports

import (
	"context"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Email uniqueness is enforced by the store itself; Create and Update return
// domain.ErrEmailTaken when the unique constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
