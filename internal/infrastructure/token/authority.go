// Package token implements the bearer-token authority: HS256-signed JWTs
// whose session id must be live in the session store for the token to
// authenticate. Revocation deletes the session, so a signed token alone is
// never enough.
package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

// SessionStore is the live-session index the authority checks tokens against.
// The Redis implementation lives in internal/infrastructure/db/redis.
type SessionStore interface {
	Put(ctx context.Context, sessionID, userID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID, userID string) error
	DeleteAll(ctx context.Context, userID string) error
}

// Authority mints and revokes bearer tokens. Implements ports.TokenAuthority.
type Authority struct {
	sessions SessionStore
	secret   string
	ttl      time.Duration
}

func NewAuthority(sessions SessionStore, secret string, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authority{sessions: sessions, secret: secret, ttl: ttl}
}

func (a *Authority) Mint(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.secret))
	if err != nil {
		return "", err
	}

	if err := a.sessions.Put(ctx, sessionID, userID); err != nil {
		return "", err
	}
	return signed, nil
}

func (a *Authority) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := a.parse(token)
	if err != nil {
		return "", err
	}

	live, err := a.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !live {
		return "", domain.ErrSessionNotFound
	}
	return claims.Subject, nil
}

func (a *Authority) Revoke(ctx context.Context, token string) error {
	claims, err := a.parse(token)
	if err != nil {
		return err
	}
	return a.sessions.Delete(ctx, claims.ID, claims.Subject)
}

func (a *Authority) RevokeAll(ctx context.Context, userID string) error {
	return a.sessions.DeleteAll(ctx, userID)
}

func (a *Authority) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(a.secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
