package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/plugins/auth"
)

// Handler serves the JSON report endpoints under /api/reports. Every route
// sits behind the bearer gate, so auth.GetUserID is always populated.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler creates the report handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// reportID parses the :id route parameter. A non-numeric ID cannot match
// any report, so it reports not-found rather than bad-request.
func reportID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFound("Report not found")
	}
	return id, nil
}

// List handles GET /api/reports.
func (h *Handler) List(c echo.Context) error {
	reports, err := h.svc.List(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		h.logger.Error("listing reports failed", "error", err)
		return apperror.NewInternal(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/reports/:id.
func (h *Handler) Get(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}

	report, err := h.svc.Get(c.Request().Context(), id, auth.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Create handles POST /api/reports. Responds 201 with the stored report and
// a Location header pointing at it.
func (h *Handler) Create(c echo.Context) error {
	var req UpsertRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("Invalid report data", []string{"Request body could not be parsed"})
	}

	report, err := h.svc.Create(c.Request().Context(), auth.GetUserID(c), req)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/reports/%d", report.ID))
	return c.JSON(http.StatusCreated, report)
}

// Update handles PUT /api/reports/:id. Responds 204 on success.
func (h *Handler) Update(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}

	var req UpsertRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("Invalid report data", []string{"Request body could not be parsed"})
	}

	if _, err := h.svc.Update(c.Request().Context(), id, auth.GetUserID(c), req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/reports/:id. Responds 204 on success.
func (h *Handler) Delete(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id, auth.GetUserID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
