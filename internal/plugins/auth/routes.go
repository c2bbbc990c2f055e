package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/middleware"
)

// RegisterAPIRoutes mounts the JSON auth endpoints on the /api/auth group.
// Login and registration carry per-IP rate limits since both are
// brute-forceable.
func RegisterAPIRoutes(g *echo.Group, h *Handler) {
	g.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	g.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
}

// RegisterWebRoutes mounts the server-rendered login/registration pages on
// the root group. These routes are public; the session gate protects the
// rest of the web app.
func RegisterWebRoutes(e *echo.Echo, h *WebHandler) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	e.POST("/logout", h.Logout)
}
