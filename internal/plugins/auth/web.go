package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/middleware"
)

// WebHandler serves the server-rendered login and registration pages.
type WebHandler struct {
	svc        Service
	sessionTTL int // cookie max-age in seconds
	logger     *slog.Logger
}

// NewWebHandler creates the web auth handler. ttlSeconds bounds the session
// cookie lifetime; the Redis key carries the authoritative expiry.
func NewWebHandler(svc Service, ttlSeconds int, logger *slog.Logger) *WebHandler {
	return &WebHandler{svc: svc, sessionTTL: ttlSeconds, logger: logger}
}

// LoginPage renders the login form.
func (h *WebHandler) LoginPage(c echo.Context) error {
	data := map[string]any{
		"CSRFToken": middleware.GetCSRFToken(c),
	}
	if c.QueryParam("registered") == "1" {
		data["Success"] = "Account created. You can sign in now."
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Login handles the login form post. On success a session cookie is set and
// the user lands on the employee directory.
func (h *WebHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	token, _, err := h.svc.LoginSession(c.Request().Context(), LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		appErr := apperror.As(err)
		if appErr != nil && (appErr.Code == http.StatusUnauthorized || appErr.Type == "validation_error") {
			return c.Render(http.StatusUnauthorized, "login.html", map[string]any{
				"CSRFToken": middleware.GetCSRFToken(c),
				"Email":     email,
				"Error":     "Invalid email or password",
			})
		}
		h.logger.Error("web login failed", "error", err)
		return apperror.NewInternal(err)
	}

	setSessionCookie(c, token, h.sessionTTL)
	return c.Redirect(http.StatusSeeOther, "/employees")
}

// RegisterPage renders the registration form.
func (h *WebHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]any{
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// Register handles the registration form post. Failed validation re-renders
// the form with all messages and the submitted name and email preserved.
func (h *WebHandler) Register(c echo.Context) error {
	input := RegisterInput{
		FullName: c.FormValue("fullName"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirm"),
	}

	_, err := h.svc.Register(c.Request().Context(), input)
	if err != nil {
		var messages []string
		appErr := apperror.As(err)
		switch {
		case appErr != nil && appErr.Type == "validation_error":
			messages = appErr.Details
		case appErr != nil && appErr.Code == http.StatusConflict:
			messages = []string{appErr.Message}
		default:
			h.logger.Error("web registration failed", "error", err)
			messages = []string{"Could not create the account. Please try again."}
		}
		return c.Render(http.StatusBadRequest, "register.html", map[string]any{
			"CSRFToken": middleware.GetCSRFToken(c),
			"FullName":  input.FullName,
			"Email":     input.Email,
			"Errors":    messages,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// Logout destroys the web session and clears the cookie.
func (h *WebHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.svc.DestroySession(c.Request().Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to destroy session", "error", err)
		}
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
