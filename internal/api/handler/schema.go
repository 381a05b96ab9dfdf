package handler

import "github.com/accounthq/accounts-api/internal/core/domain"

// --- Request types ---

type registerRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest uses pointers so omitted fields are distinguishable from
// empty ones: nil means "leave unchanged".
type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// --- Response envelopes ---
// The domain.User JSON tags exclude the password hash, so entities can be
// embedded in envelopes directly.

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type usersResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
}
