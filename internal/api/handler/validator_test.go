package handler

import (
	"errors"
	"testing"

	"github.com/accounthq/accounts-api/internal/core/domain"
)

func validationErrors(t *testing.T, err error) domain.ValidationError {
	t.Helper()
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve
}

func TestValidator_RegisterRequest_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{})
	ve := validationErrors(t, err)
	if got := ve["name"]; len(got) == 0 || got[0] != "The name field is required." {
		t.Fatalf("unexpected name messages: %v", got)
	}
	if got := ve["email"]; len(got) == 0 || got[0] != "The email field is required." {
		t.Fatalf("unexpected email messages: %v", got)
	}

	err = v.Validate(&registerRequest{
		Name:                 "Test",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "short",
	})
	ve = validationErrors(t, err)
	if got := ve["email"]; len(got) == 0 || got[0] != "The email must be a valid email address." {
		t.Fatalf("unexpected email messages: %v", got)
	}
	if got := ve["password"]; len(got) == 0 || got[0] != "The password must be at least 8 characters." {
		t.Fatalf("unexpected password messages: %v", got)
	}
}

func TestValidator_ConfirmationMismatch(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{
		Name:                 "Test",
		Email:                "t@example.com",
		Password:             "password123",
		PasswordConfirmation: "different123",
	})
	ve := validationErrors(t, err)
	if got := ve["password"]; len(got) == 0 || got[0] != "The password confirmation does not match." {
		t.Fatalf("unexpected password messages: %v", got)
	}
}

func TestValidator_FieldNamesComeFromJSONTags(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{
		Name:     "Test",
		Email:    "t@example.com",
		Password: "password123",
	})
	ve := validationErrors(t, err)
	if _, ok := ve["password_confirmation"]; !ok {
		t.Fatalf("expected key password_confirmation, got %v", ve)
	}
}

func TestValidator_UpdateRequest_OmittedFieldsPass(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&updateUserRequest{}); err != nil {
		t.Fatalf("empty update should be valid: %v", err)
	}

	name := "ok"
	if err := v.Validate(&updateUserRequest{Name: &name}); err != nil {
		t.Fatalf("name-only update should be valid: %v", err)
	}

	bad := "not-an-email"
	err := v.Validate(&updateUserRequest{Email: &bad})
	ve := validationErrors(t, err)
	if len(ve["email"]) == 0 {
		t.Fatalf("expected email error, got %v", ve)
	}
}
