package employees

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/middleware"
)

// Handler serves the server-rendered employee pages. All routes sit behind
// the session gate, so IsAuthenticated is always true for the layout.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler creates the employee web handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// pageData builds the base template data shared by every page.
func pageData(c echo.Context, extra map[string]any) map[string]any {
	data := map[string]any{
		"IsAuthenticated": true,
		"CSRFToken":       middleware.GetCSRFToken(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func employeeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFound("Employee not found")
	}
	return id, nil
}

// Index handles GET /employees.
func (h *Handler) Index(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.logger.Error("listing employees failed", "error", err)
		return apperror.NewInternal(err)
	}
	return c.Render(http.StatusOK, "employees_index.html", pageData(c, map[string]any{
		"Employees": list,
	}))
}

// NewForm handles GET /employees/create.
func (h *Handler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "employee_form.html", pageData(c, map[string]any{
		"Heading": "Add Employee",
		"Action":  "/employees/create",
	}))
}

// Create handles POST /employees. An invalid form re-renders with the
// submitted values preserved.
func (h *Handler) Create(c echo.Context) error {
	var form EmployeeForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("Invalid form submission")
	}

	if _, err := h.svc.Create(c.Request().Context(), form); err != nil {
		if appErr := apperror.As(err); appErr != nil && appErr.Type == "validation_error" {
			return c.Render(http.StatusBadRequest, "employee_form.html", pageData(c, map[string]any{
				"Heading":        "Add Employee",
				"Action":         "/employees/create",
				"Errors":         appErr.Details,
				"Name":           form.Name,
				"DOB":            form.DOB,
				"ContactAddress": form.ContactAddress,
			}))
		}
		h.logger.Error("creating employee failed", "error", err)
		return apperror.NewInternal(err)
	}

	return c.Redirect(http.StatusSeeOther, "/employees")
}

// EditForm handles GET /employees/:id/edit.
func (h *Handler) EditForm(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "employee_form.html", pageData(c, map[string]any{
		"Heading":        "Edit Employee",
		"Action":         fmt.Sprintf("/employees/%d/edit", emp.ID),
		"Name":           emp.Name,
		"DOB":            emp.DOB.Format(dobLayout),
		"ContactAddress": emp.ContactAddress,
	}))
}

// Update handles POST /employees/:id.
func (h *Handler) Update(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var form EmployeeForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("Invalid form submission")
	}

	if _, err := h.svc.Update(c.Request().Context(), id, form); err != nil {
		if appErr := apperror.As(err); appErr != nil && appErr.Type == "validation_error" {
			return c.Render(http.StatusBadRequest, "employee_form.html", pageData(c, map[string]any{
				"Heading":        "Edit Employee",
				"Action":         fmt.Sprintf("/employees/%d/edit", id),
				"Errors":         appErr.Details,
				"Name":           form.Name,
				"DOB":            form.DOB,
				"ContactAddress": form.ContactAddress,
			}))
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/employees")
}

// DeleteConfirm handles GET /employees/:id/delete, showing what the delete
// will remove before anything happens.
func (h *Handler) DeleteConfirm(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "employee_delete.html", pageData(c, map[string]any{
		"Employee": emp,
	}))
}

// Delete handles POST /employees/:id/delete.
func (h *Handler) Delete(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/employees")
}

// QualificationForm handles GET /employees/:id/qualifications.
func (h *Handler) QualificationForm(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "qualification_form.html", pageData(c, map[string]any{
		"EmployeeID":   emp.ID,
		"EmployeeName": emp.Name,
	}))
}

// AddQualification handles POST /employees/:id/qualifications.
func (h *Handler) AddQualification(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var form QualificationForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("Invalid form submission")
	}

	if _, err := h.svc.AddQualification(c.Request().Context(), id, form); err != nil {
		appErr := apperror.As(err)
		if appErr != nil && appErr.Type == "validation_error" {
			emp, lookupErr := h.svc.Get(c.Request().Context(), id)
			if lookupErr != nil {
				return lookupErr
			}
			return c.Render(http.StatusBadRequest, "qualification_form.html", pageData(c, map[string]any{
				"EmployeeID":      emp.ID,
				"EmployeeName":    emp.Name,
				"Errors":          appErr.Details,
				"Course":          form.Course,
				"YearPassed":      form.YearPassed,
				"MarksPercentage": form.MarksPercentage,
			}))
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/employees")
}
