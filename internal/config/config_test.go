package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "development" {
		t.Errorf("expected development env, got %s", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if len(cfg.JWT.Secret) < 32 {
		t.Errorf("expected dev JWT secret of at least 32 bytes, got %d", len(cfg.JWT.Secret))
	}
	if cfg.JWT.ExpiryMinutes != 60 {
		t.Errorf("expected default expiry 60 minutes, got %d", cfg.JWT.ExpiryMinutes)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected JWT_SECRET error, got: %v", err)
	}
}

func TestLoad_ShortSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_InvalidExpiryRejected(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MINUTES", "-5")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for negative JWT_EXPIRY_MINUTES")
	}
}

func TestLoad_MalformedExpiryRejected(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MINUTES", "abc")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for non-integer JWT_EXPIRY_MINUTES")
	}
	if !strings.Contains(err.Error(), "JWT_EXPIRY_MINUTES") {
		t.Errorf("error should name the offending variable, got %q", err)
	}
}

func TestJWTConfig_Validate(t *testing.T) {
	valid := JWTConfig{
		Secret:        strings.Repeat("k", 32),
		Issuer:        "staffdesk",
		Audience:      "staffdesk-clients",
		ExpiryMinutes: 60,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*JWTConfig)
	}{
		{"short secret", func(c *JWTConfig) { c.Secret = strings.Repeat("k", 31) }},
		{"empty issuer", func(c *JWTConfig) { c.Issuer = "" }},
		{"empty audience", func(c *JWTConfig) { c.Audience = "" }},
		{"zero expiry", func(c *JWTConfig) { c.ExpiryMinutes = 0 }},
		{"negative expiry", func(c *JWTConfig) { c.ExpiryMinutes = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDSN_BuildsFromFields(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		User:     "staffdesk",
		Password: "s3cret",
		Name:     "staffdesk",
	}
	dsn := d.DSN()
	if !strings.Contains(dsn, "db.internal:3306") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime=true in DSN, got %s", dsn)
	}
}

func TestDSN_OverrideWins(t *testing.T) {
	d := DatabaseConfig{
		Host:        "ignored",
		dsnOverride: "user:pass@tcp(somewhere:3306)/db",
	}
	if d.DSN() != "user:pass@tcp(somewhere:3306)/db" {
		t.Errorf("expected override DSN, got %s", d.DSN())
	}
}

func TestJWTConfig_Expiry(t *testing.T) {
	j := JWTConfig{ExpiryMinutes: 90}
	if j.Expiry() != 90*time.Minute {
		t.Errorf("expected 90m, got %s", j.Expiry())
	}
}
