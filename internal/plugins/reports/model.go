// Package reports implements the user-owned report store behind the JSON
// API. Every report belongs to the user who created it; other users' reports
// are invisible, not forbidden.
package reports

import "time"

// Report is a free-form document owned by a single user. The description
// may carry limited HTML markup; it is sanitized on the way in.
type Report struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

// UpsertRequest is the request body for creating or updating a report.
type UpsertRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}
