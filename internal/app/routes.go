package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/plugins/auth"
	"github.com/staffdesk/staffdesk/internal/plugins/employees"
	"github.com/staffdesk/staffdesk/internal/plugins/reports"
)

// RegisterRoutes wires every plugin's services and mounts all routes.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() error {
	e := a.Echo
	logger := slog.Default()

	// --- Auth Plugin ---
	issuer, err := auth.NewTokenIssuer(a.Config.JWT, logger)
	if err != nil {
		return fmt.Errorf("configuring token issuer: %w", err)
	}

	userRepo := auth.NewUserRepository(a.DB)
	authSvc := auth.NewService(userRepo, issuer, a.Redis, a.Config.Session.TTL, logger)

	authAPI := auth.NewHandler(authSvc, logger)
	auth.RegisterAPIRoutes(e.Group("/api/auth"), authAPI)

	authWeb := auth.NewWebHandler(authSvc, int(a.Config.Session.TTL.Seconds()), logger)
	auth.RegisterWebRoutes(e, authWeb)

	// --- Reports Plugin (JSON API, bearer token) ---
	reportSvc := reports.NewService(reports.NewRepository(a.DB), logger)
	reportHandler := reports.NewHandler(reportSvc, logger)
	reports.RegisterRoutes(
		e.Group("/api/reports", auth.RequireToken(issuer, logger)),
		reportHandler,
	)

	// --- Employees Plugin (server-rendered, web session) ---
	employeeSvc := employees.NewService(employees.NewRepository(a.DB), logger)
	employeeHandler := employees.NewHandler(employeeSvc, logger)
	employees.RegisterRoutes(
		e.Group("/employees", auth.RequireSession(authSvc, logger)),
		employeeHandler,
	)

	// --- Public Routes ---

	// The employee directory doubles as the landing page.
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/employees")
	})

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return nil
}

// UserRepository exposes the auth user store for startup tasks (seeding).
func (a *App) UserRepository() auth.UserRepository {
	return auth.NewUserRepository(a.DB)
}
