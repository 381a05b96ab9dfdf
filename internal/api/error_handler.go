package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  domain.ValidationError `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the {success, message, ...} envelope the API contract uses.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Field-level validation failures carry their messages to the client.
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, validationResponse{
			Success: false,
			Message: "The given data was invalid.",
			Errors:  ve,
		}
	}

	// Authenticated but not allowed: the reason is operation-specific.
	var ade *domain.AccessDeniedError
	if errors.As(err, &ade) {
		return http.StatusForbidden, failureResponse{Success: false, Message: ade.Reason}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, failureResponse{Success: false, Message: "Invalid login credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, failureResponse{Success: false, Message: "User not found"}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, map[string]string{"message": fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, failureResponse{
		Success: false,
		Message: "An unexpected error occurred.",
	}
}
