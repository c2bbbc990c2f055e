package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

const (
	// SessionCookieName is the cookie carrying the opaque web session token.
	SessionCookieName = "staffdesk_session"

	contextKeyUserID  = "auth.user_id"
	contextKeyEmail   = "auth.email"
	contextKeySession = "auth.session"
)

// RequireToken gates JSON API routes behind a bearer token. The verified
// user ID and email are stored on the request context for handlers.
func RequireToken(issuer *TokenIssuer, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperror.NewUnauthorized("Missing authorization header")
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return apperror.NewUnauthorized("Invalid authorization header")
			}

			claims, err := issuer.Parse(strings.TrimPrefix(header, prefix))
			if err != nil {
				logger.Debug("token rejected", "error", err, "path", c.Path())
				return apperror.NewUnauthorized("Invalid or expired token")
			}

			c.Set(contextKeyUserID, claims.Subject)
			c.Set(contextKeyEmail, claims.Email)
			return next(c)
		}
	}
}

// RequireSession gates server-rendered routes behind a web session. Requests
// without a valid session are redirected to the login page.
func RequireSession(svc Service, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			sess, err := svc.ValidateSession(c.Request().Context(), cookie.Value)
			if err != nil {
				if appErr := apperror.As(err); appErr != nil && appErr.Code == http.StatusUnauthorized {
					clearSessionCookie(c)
					return c.Redirect(http.StatusSeeOther, "/login")
				}
				logger.Error("session validation failed", "error", err)
				return apperror.NewInternal(err)
			}

			c.Set(contextKeyUserID, sess.UserID)
			c.Set(contextKeyEmail, sess.Email)
			c.Set(contextKeySession, sess)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's ID from the request context,
// or the empty string when the request is anonymous.
func GetUserID(c echo.Context) string {
	id, _ := c.Get(contextKeyUserID).(string)
	return id
}

// GetSession returns the web session attached to the request, or nil.
func GetSession(c echo.Context) *Session {
	sess, _ := c.Get(contextKeySession).(*Session)
	return sess
}

func setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
