package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/staffdesk/internal/apperror"
	"github.com/staffdesk/staffdesk/internal/sanitize"
)

const sessionKeyPrefix = "session:"

// Service defines the business logic contract for authentication.
type Service interface {
	// Register creates a new account after validating the inputs.
	Register(ctx context.Context, input RegisterInput) (*User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, input LoginInput) (string, *User, error)
	// LoginSession verifies credentials and opens a server-side session,
	// returning the opaque session token for the cookie.
	LoginSession(ctx context.Context, input LoginInput) (string, *User, error)
	// ValidateSession resolves an opaque session token to its session data.
	ValidateSession(ctx context.Context, token string) (*Session, error)
	// DestroySession removes a session, logging the user out.
	DestroySession(ctx context.Context, token string) error
}

type service struct {
	repo       UserRepository
	issuer     *TokenIssuer
	redis      *redis.Client
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewService creates the authentication service.
func NewService(repo UserRepository, issuer *TokenIssuer, rdb *redis.Client, sessionTTL time.Duration, logger *slog.Logger) Service {
	return &service{
		repo:       repo,
		issuer:     issuer,
		redis:      rdb,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register validates the registration input, hashes the password and stores
// the new account. Validation failures carry per-field messages so the
// caller can render them all at once.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := NormalizeEmail(input.Email)
	fullName := sanitize.Text(input.FullName)

	var problems []string
	if fullName == "" {
		problems = append(problems, "Full name is required")
	}
	if !ValidEmail(email) {
		problems = append(problems, "A valid email address is required")
	}
	problems = append(problems, ValidatePassword(input.Password)...)
	if input.Confirm != "" && input.Confirm != input.Password {
		problems = append(problems, "Passwords do not match")
	}
	if len(problems) > 0 {
		return nil, apperror.NewValidation("Invalid registration data", problems)
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking duplicate email: %w", err)
	}
	if exists {
		s.logger.Info("registration rejected, email already in use", "email", email)
		return nil, apperror.NewConflict("Email is already registered")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// authenticate verifies an email/password pair against the credential
// store. Unknown email and wrong password both return the same
// Unauthorized error so an attacker cannot probe for accounts.
func (s *service) authenticate(ctx context.Context, input LoginInput) (*User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.NewValidation("Invalid login data", []string{"Email and password are required"})
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := verifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		s.logger.Info("login rejected, bad password", "user_id", user.ID)
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Losing the timestamp is not worth failing the login over.
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login authenticates the user and mints a bearer token for the JSON API.
func (s *service) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}

// LoginSession authenticates the user and opens a Redis-backed session for
// the server-rendered pages.
func (s *service) LoginSession(ctx context.Context, input LoginInput) (string, *User, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return "", nil, err
	}

	sess := Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", nil, fmt.Errorf("encoding session: %w", err)
	}

	token := uuid.NewString()
	if err := s.redis.Set(ctx, sessionKeyPrefix+token, payload, s.sessionTTL).Err(); err != nil {
		return "", nil, fmt.Errorf("storing session: %w", err)
	}

	s.logger.Info("session opened", "user_id", user.ID)
	return token, user, nil
}

// ValidateSession resolves a session token back to its session record.
// A missing or expired key returns Unauthorized.
func (s *service) ValidateSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperror.NewUnauthorized("No session")
	}

	payload, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, apperror.NewUnauthorized("Session expired")
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	return &sess, nil
}

// DestroySession deletes a session key. Deleting a session that is already
// gone is not an error.
func (s *service) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
