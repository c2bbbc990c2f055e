package employees

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// --- Mock Repository ---

type mockRepo struct {
	createFn           func(ctx context.Context, emp *Employee) error
	findByIDFn         func(ctx context.Context, id int64) (*Employee, error)
	listFn             func(ctx context.Context) ([]Employee, error)
	updateFn           func(ctx context.Context, emp *Employee) error
	deleteFn           func(ctx context.Context, id int64) error
	addQualificationFn func(ctx context.Context, qual *Qualification) error
}

func (m *mockRepo) Create(ctx context.Context, emp *Employee) error {
	if m.createFn != nil {
		return m.createFn(ctx, emp)
	}
	emp.ID = 1
	return nil
}

func (m *mockRepo) FindByID(ctx context.Context, id int64) (*Employee, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("Employee not found")
}

func (m *mockRepo) List(ctx context.Context) ([]Employee, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []Employee{}, nil
}

func (m *mockRepo) Update(ctx context.Context, emp *Employee) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, emp)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) AddQualification(ctx context.Context, qual *Qualification) error {
	if m.addQualificationFn != nil {
		return m.addQualificationFn(ctx, qual)
	}
	qual.ID = 1
	return nil
}

func newTestService(repo *mockRepo) Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

func validForm() EmployeeForm {
	return EmployeeForm{
		Name:           "Dana Field",
		DOB:            "1990-06-15",
		ContactAddress: "12 Harbour Road",
	}
}

// --- Employee Tests ---

func TestCreateEmployee_Success(t *testing.T) {
	var stored *Employee
	repo := &mockRepo{
		createFn: func(ctx context.Context, emp *Employee) error {
			emp.ID = 3
			stored = emp
			return nil
		},
	}

	svc := newTestService(repo)
	emp, err := svc.Create(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.ID != 3 {
		t.Errorf("expected ID 3, got %d", emp.ID)
	}
	want := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	if !stored.DOB.Equal(want) {
		t.Errorf("expected DOB %v, got %v", want, stored.DOB)
	}
}

func TestCreateEmployee_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EmployeeForm)
	}{
		{"missing name", func(f *EmployeeForm) { f.Name = "" }},
		{"blank name", func(f *EmployeeForm) { f.Name = "   " }},
		{"missing address", func(f *EmployeeForm) { f.ContactAddress = "" }},
		{"missing dob", func(f *EmployeeForm) { f.DOB = "" }},
		{"malformed dob", func(f *EmployeeForm) { f.DOB = "15/06/1990" }},
		{"future dob", func(f *EmployeeForm) { f.DOB = "2990-01-01" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			svc := newTestService(&mockRepo{
				createFn: func(ctx context.Context, emp *Employee) error {
					t.Error("create should not be called for invalid input")
					return nil
				},
			})
			_, err := svc.Create(context.Background(), form)
			assertAppError(t, err, http.StatusBadRequest)
		})
	}
}

func TestCreateEmployee_SanitizesName(t *testing.T) {
	var stored *Employee
	repo := &mockRepo{
		createFn: func(ctx context.Context, emp *Employee) error {
			stored = emp
			return nil
		},
	}

	form := validForm()
	form.Name = "<i>Dana</i> Field"
	svc := newTestService(repo)
	if _, err := svc.Create(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Dana Field" {
		t.Errorf("expected markup stripped, got %q", stored.Name)
	}
}

func TestUpdateEmployee_Success(t *testing.T) {
	var stored *Employee
	repo := &mockRepo{
		updateFn: func(ctx context.Context, emp *Employee) error {
			stored = emp
			return nil
		},
	}

	svc := newTestService(repo)
	if _, err := svc.Update(context.Background(), 7, validForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != 7 {
		t.Errorf("expected ID 7, got %d", stored.ID)
	}
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	repo := &mockRepo{
		updateFn: func(ctx context.Context, emp *Employee) error {
			return apperror.NewNotFound("Employee not found")
		},
	}

	svc := newTestService(repo)
	_, err := svc.Update(context.Background(), 999, validForm())
	assertAppError(t, err, http.StatusNotFound)
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	repo := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return apperror.NewNotFound("Employee not found")
		},
	}

	svc := newTestService(repo)
	assertAppError(t, svc.Delete(context.Background(), 999), http.StatusNotFound)
}

// --- Qualification Tests ---

func TestAddQualification_Success(t *testing.T) {
	var stored *Qualification
	repo := &mockRepo{
		addQualificationFn: func(ctx context.Context, qual *Qualification) error {
			qual.ID = 9
			stored = qual
			return nil
		},
	}

	svc := newTestService(repo)
	qual, err := svc.AddQualification(context.Background(), 4, QualificationForm{
		Course:          "Structural Engineering",
		YearPassed:      "2015",
		MarksPercentage: "82.5",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qual.ID != 9 {
		t.Errorf("expected ID 9, got %d", qual.ID)
	}
	if stored.EmployeeID != 4 {
		t.Errorf("expected employee 4, got %d", stored.EmployeeID)
	}
	if stored.YearPassed != 2015 || stored.MarksPercentage != 82.5 {
		t.Errorf("unexpected parsed values: %+v", stored)
	}
}

func TestAddQualification_Validation(t *testing.T) {
	tests := []struct {
		name string
		form QualificationForm
	}{
		{"missing course", QualificationForm{Course: "", YearPassed: "2015", MarksPercentage: "80"}},
		{"year not a number", QualificationForm{Course: "Maths", YearPassed: "soon", MarksPercentage: "80"}},
		{"year too early", QualificationForm{Course: "Maths", YearPassed: "1899", MarksPercentage: "80"}},
		{"year too late", QualificationForm{Course: "Maths", YearPassed: "2101", MarksPercentage: "80"}},
		{"marks not a number", QualificationForm{Course: "Maths", YearPassed: "2015", MarksPercentage: "lots"}},
		{"marks negative", QualificationForm{Course: "Maths", YearPassed: "2015", MarksPercentage: "-1"}},
		{"marks above 100", QualificationForm{Course: "Maths", YearPassed: "2015", MarksPercentage: "100.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockRepo{
				addQualificationFn: func(ctx context.Context, qual *Qualification) error {
					t.Error("insert should not be called for invalid input")
					return nil
				},
			})
			_, err := svc.AddQualification(context.Background(), 4, tt.form)
			assertAppError(t, err, http.StatusBadRequest)
		})
	}
}

func TestAddQualification_BoundaryValues(t *testing.T) {
	svc := newTestService(&mockRepo{})
	for _, form := range []QualificationForm{
		{Course: "Maths", YearPassed: "1900", MarksPercentage: "0"},
		{Course: "Maths", YearPassed: "2100", MarksPercentage: "100"},
	} {
		if _, err := svc.AddQualification(context.Background(), 4, form); err != nil {
			t.Errorf("expected boundary values to pass, got: %v", err)
		}
	}
}

func TestAddQualification_UnknownEmployee(t *testing.T) {
	repo := &mockRepo{
		addQualificationFn: func(ctx context.Context, qual *Qualification) error {
			return apperror.NewNotFound("Employee not found")
		},
	}

	svc := newTestService(repo)
	_, err := svc.AddQualification(context.Background(), 999, QualificationForm{
		Course: "Maths", YearPassed: "2015", MarksPercentage: "80",
	})
	assertAppError(t, err, http.StatusNotFound)
}
