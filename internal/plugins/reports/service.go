package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/sanitize"
)

const (
	titleMaxLen       = 200
	descriptionMaxLen = 4000
)

// Service defines the business logic contract for reports. The userID on
// every method is the authenticated caller; ownership is enforced here and
// in the repository, never in the handler.
type Service interface {
	Create(ctx context.Context, userID string, req UpsertRequest) (*Report, error)
	Get(ctx context.Context, id int64, userID string) (*Report, error)
	List(ctx context.Context, userID string) ([]Report, error)
	Update(ctx context.Context, id int64, userID string, req UpsertRequest) (*Report, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the report service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// validate sanitizes the request in place and returns any field problems.
// The title is plain text; the description keeps safe markup.
func validate(req *UpsertRequest) []string {
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.HTML(req.Description)

	var problems []string
	if req.Title == "" {
		problems = append(problems, "Title is required")
	}
	if len(req.Title) > titleMaxLen {
		problems = append(problems, fmt.Sprintf("Title must be at most %d characters", titleMaxLen))
	}
	if len(req.Description) > descriptionMaxLen {
		problems = append(problems, fmt.Sprintf("Description must be at most %d characters", descriptionMaxLen))
	}
	return problems
}

// Create validates and stores a new report for the user.
func (s *service) Create(ctx context.Context, userID string, req UpsertRequest) (*Report, error) {
	if problems := validate(&req); len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid report data", problems)
	}

	report := &Report{
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	s.logger.Info("report created", "report_id", report.ID, "user_id", userID)
	return report, nil
}

// Get returns one of the user's reports.
func (s *service) Get(ctx context.Context, id int64, userID string) (*Report, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// List returns all of the user's reports.
func (s *service) List(ctx context.Context, userID string) ([]Report, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update validates and rewrites one of the user's reports, returning the
// stored result.
func (s *service) Update(ctx context.Context, id int64, userID string, req UpsertRequest) (*Report, error) {
	if problems := validate(&req); len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid report data", problems)
	}

	// Load first so the update keeps the original creation time and the
	// caller gets the full record back.
	report, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	report.Title = req.Title
	report.Description = req.Description
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report updated", "report_id", id, "user_id", userID)
	return report, nil
}

// Delete removes one of the user's reports.
func (s *service) Delete(ctx context.Context, id int64, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("report deleted", "report_id", id, "user_id", userID)
	return nil
}
