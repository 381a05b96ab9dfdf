package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accounthq/accounts-api/internal/api/middleware"
	"github.com/accounthq/accounts-api/internal/core/domain"
	"github.com/accounthq/accounts-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context, caller *domain.User) ([]domain.User, error)
	getFn    func(ctx context.Context, caller *domain.User, targetID string) (*domain.User, error)
	updateFn func(ctx context.Context, caller *domain.User, targetID string, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, caller *domain.User, targetID string) error
}

func (s *stubUserService) ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) GetUser(ctx context.Context, caller *domain.User, targetID string) (*domain.User, error) {
	return s.getFn(ctx, caller, targetID)
}

func (s *stubUserService) UpdateUser(ctx context.Context, caller *domain.User, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, targetID, input)
}

func (s *stubUserService) DeleteUser(ctx context.Context, caller *domain.User, targetID string) error {
	return s.deleteFn(ctx, caller, targetID)
}

func setCaller(c echo.Context, user *domain.User) {
	c.Set(middleware.ContextKeyUser, user)
}

func TestUserHandler_List_Success(t *testing.T) {
	e := echo.New()
	admin := &domain.User{ID: "1", Role: domain.RoleAdmin}
	stub := &stubUserService{
		listFn: func(_ context.Context, caller *domain.User) ([]domain.User, error) {
			if caller != admin {
				t.Fatalf("caller not forwarded")
			}
			return []domain.User{
				{ID: "1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, PasswordHash: "h1"},
				{ID: "2", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, PasswordHash: "h2"},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/users", "")
	setCaller(c, admin)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "Successfully retrieved Users" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", resp["users"])
	}
	for _, raw := range users {
		user := raw.(map[string]any)
		if _, leaked := user["password"]; leaked {
			t.Fatalf("password leaked in list response")
		}
	}
}

func TestUserHandler_List_Forbidden(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(context.Context, *domain.User) ([]domain.User, error) {
			return nil, &domain.AccessDeniedError{Reason: "Unauthorized to view all users"}
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(e, http.MethodGet, "/users", "")
	setCaller(c, &domain.User{ID: "2", Role: domain.RoleUser})

	err := h.List(c)
	var ade *domain.AccessDeniedError
	if !errors.As(err, &ade) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "2", Role: domain.RoleUser}
	stub := &stubUserService{
		getFn: func(_ context.Context, caller *domain.User, targetID string) (*domain.User, error) {
			if targetID != "2" {
				t.Fatalf("unexpected target: %s", targetID)
			}
			return &domain.User{ID: "2", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/users/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	setCaller(c, alice)

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Successfully retrieved user" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(context.Context, *domain.User, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(e, http.MethodGet, "/users/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")
	setCaller(c, &domain.User{ID: "1", Role: domain.RoleAdmin})

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	alice := &domain.User{ID: "2", Role: domain.RoleUser}
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ *domain.User, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
			if input.Name == nil || *input.Name != "Updated Name" {
				t.Fatalf("expected name set, got %+v", input)
			}
			// Omitted fields arrive as nil so they stay unchanged.
			if input.Email != nil || input.Password != nil {
				t.Fatalf("expected omitted fields nil, got %+v", input)
			}
			return &domain.User{ID: targetID, Name: *input.Name, Email: "alice@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(e, http.MethodPut, "/users/2", `{"name":"Updated Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	setCaller(c, alice)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "User account updated successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Update_InvalidEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		updateFn: func(context.Context, *domain.User, string, ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(e, http.MethodPut, "/users/2", `{"email":"not-an-email"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	setCaller(c, &domain.User{ID: "2", Role: domain.RoleUser})

	err := h.Update(c)
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve["email"]) == 0 {
		t.Fatalf("expected error on email, got %v", ve)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	e := echo.New()
	admin := &domain.User{ID: "1", Role: domain.RoleAdmin}
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(_ context.Context, _ *domain.User, targetID string) error {
			deleted = targetID
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(e, http.MethodDelete, "/users/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	setCaller(c, admin)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "2" {
		t.Fatalf("expected target 2 deleted, got %q", deleted)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "User account deleted successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Delete_Forbidden(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteFn: func(context.Context, *domain.User, string) error {
			return &domain.AccessDeniedError{Reason: "Unauthorized to delete this account"}
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(e, http.MethodDelete, "/users/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	setCaller(c, &domain.User{ID: "2", Role: domain.RoleUser})

	err := h.Delete(c)
	var ade *domain.AccessDeniedError
	if !errors.As(err, &ade) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
	if ade.Reason != "Unauthorized to delete this account" {
		t.Fatalf("unexpected reason: %q", ade.Reason)
	}
}
