package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthq/accounts-api/internal/api/metrics"
	"github.com/accounthq/accounts-api/internal/core/ports"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns its first bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  registerResponse
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{
		Message: "success",
		User:    user,
		Token:   token,
	})
}

// Login authenticates a user, invalidates all prior sessions, and returns a
// fresh bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  messageResponse
// @Failure      422   {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionRevocationsTotal.WithLabelValues("all").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		TokenType: "Bearer",
	})
}

// Logout revokes the session presented with this request. Other sessions of
// the same user stay valid.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	caller := currentUser(c)
	if caller == nil {
		return c.JSON(http.StatusUnauthorized, messageResponse{
			Success: false,
			Message: "User not authenticated",
		})
	}

	if err := h.authService.Logout(c.Request().Context(), caller, currentToken(c)); err != nil {
		return err
	}

	metrics.SessionRevocationsTotal.WithLabelValues("single").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Successfully logged out",
	})
}
