package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository used by the service tests.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

// stubTokenAuthority tracks minted and revoked tokens in memory.
type stubTokenAuthority struct {
	minted int
	live   map[string]string // token -> user id
}

func newStubTokenAuthority() *stubTokenAuthority {
	return &stubTokenAuthority{live: make(map[string]string)}
}

func (a *stubTokenAuthority) Mint(_ context.Context, userID string) (string, error) {
	a.minted++
	token := fmt.Sprintf("token-%d", a.minted)
	a.live[token] = userID
	return token, nil
}

func (a *stubTokenAuthority) Resolve(_ context.Context, token string) (string, error) {
	if userID, ok := a.live[token]; ok {
		return userID, nil
	}
	return "", domain.ErrSessionNotFound
}

func (a *stubTokenAuthority) Revoke(_ context.Context, token string) error {
	delete(a.live, token)
	return nil
}

func (a *stubTokenAuthority) RevokeAll(_ context.Context, userID string) error {
	for token, owner := range a.live {
		if owner == userID {
			delete(a.live, token)
		}
	}
	return nil
}
