package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthq/accounts-api/internal/core/domain"
	"github.com/accounthq/accounts-api/internal/core/ports"
)

// Context keys under which the middleware stores the resolved caller and the
// raw bearer token.
const (
	ContextKeyUser  = "auth_user"
	ContextKeyToken = "auth_token"
)

// Authenticate resolves the bearer token to a user and injects both into the
// request context. Requests with a missing, malformed, revoked, or expired
// token fail with domain.ErrUnauthenticated, which the central error handler
// renders as a 401.
func Authenticate(tokens ports.TokenAuthority, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}
			token := parts[1]

			userID, err := tokens.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrUnauthenticated) {
					return domain.ErrUnauthenticated
				}
				return err
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A live session for a deleted account is as good as no session.
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrUnauthenticated
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyToken, token)

			return next(c)
		}
	}
}
