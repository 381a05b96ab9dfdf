package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/accounthq/accounts-api/internal/api/middleware"
	"github.com/accounthq/accounts-api/internal/core/domain"
)

// currentUser returns the authenticated caller resolved by the middleware,
// or nil on unauthenticated routes.
func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	return user
}

// currentToken returns the raw bearer token presented with the request.
func currentToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	return token
}
