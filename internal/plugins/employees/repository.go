package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// Repository defines the data access contract for employees and their
// qualifications.
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id int64) error
	AddQualification(ctx context.Context, qual *Qualification) error
}

type repository struct {
	db *sql.DB
}

// NewRepository creates an employee repository backed by the given DB pool.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts an employee and backfills the generated ID.
func (r *repository) Create(ctx context.Context, emp *Employee) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (name, dob, contact_address) VALUES (?, ?, ?)`,
		emp.Name, emp.DOB, emp.ContactAddress,
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading employee id: %w", err)
	}
	emp.ID = id
	return nil
}

// FindByID loads one employee with their qualifications.
func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	emp := &Employee{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, dob, contact_address FROM employees WHERE id = ?`, id,
	).Scan(&emp.ID, &emp.Name, &emp.DOB, &emp.ContactAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying employee: %w", err)
	}

	quals, err := r.qualificationsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	emp.Qualifications = quals[id]
	return emp, nil
}

// List returns all employees with their qualifications, ordered by name.
// The directory is small; two queries beat a join that duplicates employee
// rows per qualification.
func (r *repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, dob, contact_address FROM employees ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	employees := []Employee{}
	ids := []int64{}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.DOB, &emp.ContactAddress); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, emp)
		ids = append(ids, emp.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}

	if len(ids) == 0 {
		return employees, nil
	}

	quals, err := r.qualificationsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Qualifications = quals[employees[i].ID]
	}
	return employees, nil
}

// qualificationsFor loads qualifications for a set of employees, keyed by
// employee ID.
func (r *repository) qualificationsFor(ctx context.Context, ids []int64) (map[int64][]Qualification, error) {
	query := `SELECT id, employee_id, course, year_passed, marks_percentage
	          FROM qualifications WHERE employee_id IN (`
	args := make([]any, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args[i] = id
	}
	query += `) ORDER BY year_passed, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing qualifications: %w", err)
	}
	defer rows.Close()

	result := map[int64][]Qualification{}
	for rows.Next() {
		var q Qualification
		if err := rows.Scan(&q.ID, &q.EmployeeID, &q.Course, &q.YearPassed, &q.MarksPercentage); err != nil {
			return nil, fmt.Errorf("scanning qualification: %w", err)
		}
		result[q.EmployeeID] = append(result[q.EmployeeID], q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating qualifications: %w", err)
	}
	return result, nil
}

// Update rewrites an employee's fields. Returns apperror.NotFound when the
// employee does not exist.
func (r *repository) Update(ctx context.Context, emp *Employee) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, dob = ?, contact_address = ? WHERE id = ?`,
		emp.Name, emp.DOB, emp.ContactAddress, emp.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("Employee not found")
	}
	return nil
}

// Delete removes an employee and all their qualifications in one
// transaction.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM qualifications WHERE employee_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting qualifications: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("Employee not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// AddQualification inserts a qualification and backfills the generated ID.
// Returns apperror.NotFound when the employee does not exist.
func (r *repository) AddQualification(ctx context.Context, qual *Qualification) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE id = ?)`, qual.EmployeeID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking employee exists: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("Employee not found")
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO qualifications (employee_id, course, year_passed, marks_percentage)
		 VALUES (?, ?, ?, ?)`,
		qual.EmployeeID, qual.Course, qual.YearPassed, qual.MarksPercentage,
	)
	if err != nil {
		return fmt.Errorf("inserting qualification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading qualification id: %w", err)
	}
	qual.ID = id
	return nil
}
