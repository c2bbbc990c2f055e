package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// Handler serves the JSON authentication endpoints under /api/auth.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler creates the API auth handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register handles POST /api/auth/register. Validation failures and store
// failures (including a duplicate email) both come back as 400 with a
// message and an errors list; the endpoint never distinguishes them.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid registration data",
			"errors":  []string{"Request body could not be parsed"},
		})
	}

	_, err := h.svc.Register(c.Request().Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Confirm:  req.Confirm,
	})
	if err != nil {
		appErr := apperror.As(err)
		switch {
		case appErr != nil && appErr.Type == "validation_error":
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": appErr.Message,
				"errors":  appErr.Details,
			})
		case appErr != nil && appErr.Code == http.StatusConflict:
			// Duplicate emails are reported the same way as any other
			// store failure so the endpoint cannot be used to enumerate
			// registered addresses.
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Registration failed",
				"errors":  []string{appErr.Message},
			})
		default:
			h.logger.Error("registration failed", "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Registration failed",
				"errors":  []string{"Could not create the account"},
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User registered successfully",
	})
}

// Login handles POST /api/auth/login, returning a bearer token on success.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid login data",
			"errors":  []string{"Request body could not be parsed"},
		})
	}

	token, user, err := h.svc.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		appErr := apperror.As(err)
		switch {
		case appErr != nil && appErr.Type == "validation_error":
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": appErr.Message,
				"errors":  appErr.Details,
			})
		case appErr != nil && appErr.Code == http.StatusUnauthorized:
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"message": "Invalid credentials",
			})
		default:
			h.logger.Error("login failed", "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "An error occurred during login",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":  token,
		"userId": user.ID,
	})
}
