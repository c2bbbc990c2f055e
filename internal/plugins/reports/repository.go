package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// Repository defines the data access contract for reports. Every method
// that targets a single report takes the owner's user ID; a report owned by
// someone else behaves exactly like a report that does not exist.
type Repository interface {
	Create(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id int64, userID string) (*Report, error)
	ListByUser(ctx context.Context, userID string) ([]Report, error)
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id int64, userID string) error
}

type repository struct {
	db *sql.DB
}

// NewRepository creates a report repository backed by the given DB pool.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts a report and backfills its generated ID.
func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `INSERT INTO reports (title, description, created_at, user_id)
	          VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		report.Title,
		report.Description,
		report.CreatedAt,
		report.UserID,
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading report id: %w", err)
	}
	report.ID = id
	return nil
}

// FindByID retrieves a report by ID, scoped to its owner.
// Returns apperror.NotFound when the report does not exist or belongs to
// another user.
func (r *repository) FindByID(ctx context.Context, id int64, userID string) (*Report, error) {
	query := `SELECT id, title, description, created_at, user_id
	          FROM reports WHERE id = ? AND user_id = ?`

	report := &Report{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.CreatedAt,
		&report.UserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying report: %w", err)
	}

	return report, nil
}

// ListByUser returns all reports owned by the user, newest first.
func (r *repository) ListByUser(ctx context.Context, userID string) ([]Report, error) {
	query := `SELECT id, title, description, created_at, user_id
	          FROM reports WHERE user_id = ?
	          ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var report Report
		if err := rows.Scan(
			&report.ID,
			&report.Title,
			&report.Description,
			&report.CreatedAt,
			&report.UserID,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

// Update rewrites a report's title and description, scoped to its owner.
// Returns apperror.NotFound when nothing matched.
func (r *repository) Update(ctx context.Context, report *Report) error {
	query := `UPDATE reports SET title = ?, description = ?
	          WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		report.Title,
		report.Description,
		report.ID,
		report.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating report: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("Report not found")
	}
	return nil
}

// Delete removes a report, scoped to its owner.
// Returns apperror.NotFound when nothing matched.
func (r *repository) Delete(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reports WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("Report not found")
	}
	return nil
}
