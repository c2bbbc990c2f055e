package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// mockAuthService implements Service for handler tests.
type mockAuthService struct {
	registerFn     func(ctx context.Context, input RegisterInput) (*User, error)
	loginFn        func(ctx context.Context, input LoginInput) (string, *User, error)
	loginSessionFn func(ctx context.Context, input LoginInput) (string, *User, error)
}

func (m *mockAuthService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return &User{ID: "user-1"}, nil
}

func (m *mockAuthService) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return "token", &User{ID: "user-1"}, nil
}

func (m *mockAuthService) LoginSession(ctx context.Context, input LoginInput) (string, *User, error) {
	if m.loginSessionFn != nil {
		return m.loginSessionFn(ctx, input)
	}
	return "session-token", &User{ID: "user-1"}, nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	return nil, apperror.NewUnauthorized("No session")
}

func (m *mockAuthService) DestroySession(ctx context.Context, token string) error {
	return nil
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestHandlerRegister_Success(t *testing.T) {
	h := NewHandler(&mockAuthService{}, testLogger())
	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"alice@example.com","password":"Admin@123","fullName":"Alice"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "User registered successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestHandlerRegister_ValidationErrors(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, input RegisterInput) (*User, error) {
			return nil, apperror.NewValidation("Invalid registration data",
				[]string{"A valid email address is required"})
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"nope"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Invalid registration data" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if errs, ok := body["errors"].([]any); !ok || len(errs) != 1 {
		t.Errorf("expected one error message, got: %v", body["errors"])
	}
}

func TestHandlerRegister_DuplicateEmailIs400(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, input RegisterInput) (*User, error) {
			return nil, apperror.NewConflict("Email is already registered")
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"alice@example.com","password":"Admin@123","fullName":"Alice"}`)

	// A duplicate looks like any other registration failure to the client.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Registration failed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestHandlerRegister_StoreFailureIs400(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, input RegisterInput) (*User, error) {
			return nil, errors.New("db down")
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"alice@example.com","password":"Admin@123","fullName":"Alice"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Registration failed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestHandlerLogin_Success(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, input LoginInput) (string, *User, error) {
			return "signed-token", &User{ID: "user-1"}, nil
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"Admin@123"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["token"] != "signed-token" {
		t.Errorf("unexpected token: %v", body["token"])
	}
	if body["userId"] != "user-1" {
		t.Errorf("unexpected userId: %v", body["userId"])
	}
}

func TestHandlerLogin_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, input LoginInput) (string, *User, error) {
			return "", nil, apperror.NewUnauthorized("Invalid credentials")
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"Wrong@123"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Invalid credentials" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestHandlerLogin_ServiceFailure(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, input LoginInput) (string, *User, error) {
			return "", nil, errors.New("redis down")
		},
	}
	h := NewHandler(svc, testLogger())
	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"Admin@123"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "An error occurred during login" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}
