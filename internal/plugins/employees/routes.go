package employees

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the employee pages on the given group. The group
// must already carry the session middleware.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.Index)
	g.GET("/create", h.NewForm)
	g.POST("/create", h.Create)
	g.GET("/:id/edit", h.EditForm)
	g.POST("/:id/edit", h.Update)
	g.GET("/:id/delete", h.DeleteConfirm)
	g.POST("/:id/delete", h.Delete)
	g.GET("/:id/qualifications", h.QualificationForm)
	g.POST("/:id/qualifications", h.AddQualification)
}
