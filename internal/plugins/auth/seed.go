package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk/internal/apperror"
)

// SeedAdmin ensures the configured administrator account exists. Called once
// at startup; an existing account is left untouched so the admin can change
// their password without it being reset on restart.
func SeedAdmin(ctx context.Context, repo UserRepository, email, password, name string, logger *slog.Logger) error {
	if email == "" || password == "" {
		logger.Debug("admin seed skipped, no credentials configured")
		return nil
	}

	email = NormalizeEmail(email)

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		logger.Debug("admin account already present", "email", email)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	logger.Info("admin account seeded", "email", email)
	return nil
}
