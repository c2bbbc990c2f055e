// Package auth handles user identity for Staffdesk: registration, credential
// verification, JWT issuance for the JSON API, and Redis-backed sessions for
// the server-rendered pages. Passwords are hashed with argon2id; the bearer
// middleware in this package is the authorization gate for /api routes.
package auth

import (
	"time"
)

// User represents a registered account. This is the domain model used
// throughout the application; the credential store is its system of record.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to the registration endpoint or form.
// The plaintext password lives only for the duration of the request.
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"fullName" form:"fullName"`

	// Confirm is only submitted by the HTML registration form.
	Confirm string `json:"-" form:"confirm"`
}

// LoginRequest holds the credentials submitted to the login endpoint or form.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// --- Service input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new user. Confirm is
// empty for API registrations; the policy only checks it when present.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Confirm  string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}

// --- Session ---

// Session represents an authenticated browser session stored in Redis.
// The session token is the key, and this struct is the value (JSON-encoded).
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
