package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so the response never reveals which part was wrong.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrSessionNotFound is returned by the token authority when a presented
	// token is well formed but its session has been revoked or expired.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError carries field-level validation messages, keyed by the JSON
// field name. It renders as a 422 with the messages echoed back verbatim.
type ValidationError map[string][]string

func (e ValidationError) Error() string {
	return "the given data was invalid"
}

// Add appends a message for a field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// AccessDeniedError is returned when an authenticated caller lacks the role
// or ownership required by an operation. Reason is safe to show to clients.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return e.Reason
}
