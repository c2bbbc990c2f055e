package employees

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/sanitize"
)

const (
	dobLayout     = "2006-01-02"
	yearPassedMin = 1900
	yearPassedMax = 2100
)

// Service defines the business logic contract for the employee directory.
type Service interface {
	Create(ctx context.Context, form EmployeeForm) (*Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id int64, form EmployeeForm) (*Employee, error)
	Delete(ctx context.Context, id int64) error
	AddQualification(ctx context.Context, employeeID int64, form QualificationForm) (*Qualification, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the employee service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// parseEmployee sanitizes and validates the form, returning the parsed
// values alongside any field problems.
func parseEmployee(form EmployeeForm) (name string, dob time.Time, address string, problems []string) {
	name = sanitize.Text(form.Name)
	address = sanitize.Text(form.ContactAddress)

	if name == "" {
		problems = append(problems, "Name is required")
	}
	if address == "" {
		problems = append(problems, "Contact address is required")
	}

	if form.DOB == "" {
		problems = append(problems, "Date of birth is required")
	} else {
		var err error
		dob, err = time.Parse(dobLayout, form.DOB)
		if err != nil {
			problems = append(problems, "Date of birth must be a valid date")
		} else if dob.After(time.Now()) {
			problems = append(problems, "Date of birth cannot be in the future")
		}
	}
	return name, dob, address, problems
}

// parseQualification sanitizes and validates the qualification form.
func parseQualification(form QualificationForm) (course string, year int, marks float64, problems []string) {
	course = sanitize.Text(form.Course)
	if course == "" {
		problems = append(problems, "Course is required")
	}

	year, err := strconv.Atoi(form.YearPassed)
	if err != nil {
		problems = append(problems, "Year passed must be a number")
	} else if year < yearPassedMin || year > yearPassedMax {
		problems = append(problems, "Year passed must be between 1900 and 2100")
	}

	marks, err = strconv.ParseFloat(form.MarksPercentage, 64)
	if err != nil {
		problems = append(problems, "Marks percentage must be a number")
	} else if marks < 0 || marks > 100 {
		problems = append(problems, "Marks percentage must be between 0 and 100")
	}
	return course, year, marks, problems
}

// Create validates and stores a new employee.
func (s *service) Create(ctx context.Context, form EmployeeForm) (*Employee, error) {
	name, dob, address, problems := parseEmployee(form)
	if len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid employee data", problems)
	}

	emp := &Employee{Name: name, DOB: dob, ContactAddress: address}
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", emp.ID)
	return emp, nil
}

// Get loads one employee with qualifications.
func (s *service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the full directory.
func (s *service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Update validates and rewrites an existing employee.
func (s *service) Update(ctx context.Context, id int64, form EmployeeForm) (*Employee, error) {
	name, dob, address, problems := parseEmployee(form)
	if len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid employee data", problems)
	}

	emp := &Employee{ID: id, Name: name, DOB: dob, ContactAddress: address}
	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return emp, nil
}

// Delete removes an employee and their qualifications.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// AddQualification validates and attaches a qualification to an employee.
func (s *service) AddQualification(ctx context.Context, employeeID int64, form QualificationForm) (*Qualification, error) {
	course, year, marks, problems := parseQualification(form)
	if len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid qualification data", problems)
	}

	qual := &Qualification{
		EmployeeID:      employeeID,
		Course:          course,
		YearPassed:      year,
		MarksPercentage: marks,
	}
	if err := s.repo.AddQualification(ctx, qual); err != nil {
		return nil, err
	}

	s.logger.Info("qualification added", "employee_id", employeeID, "qualification_id", qual.ID)
	return qual, nil
}
