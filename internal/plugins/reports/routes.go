package reports

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the report endpoints on the /api/reports group.
// The group must already carry the bearer token middleware.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
