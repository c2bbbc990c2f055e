package auth

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/staffdesk/staffdesk/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "0123456789abcdef0123456789abcdef",
		Issuer:        "staffdesk-test",
		Audience:      "staffdesk-clients",
		ExpiryMinutes: 60,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testJWTConfig(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return issuer
}

func TestNewTokenIssuer_ShortKey(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = "too-short"
	if _, err := NewTokenIssuer(cfg, testLogger()); err == nil {
		t.Fatal("expected error for short signing key")
	}
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &User{ID: "user-1", Email: "alice@example.com"}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected uid user-1, got %q", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected a jti to be set")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("expected a future expiry")
	}
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &User{ID: "user-1", Email: "alice@example.com"}

	t1, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c1, _ := issuer.Parse(t1)
	c2, _ := issuer.Parse(t2)
	if c1.ID == c2.ID {
		t.Error("expected distinct jti per token")
	}
}

func TestParse_WrongKey(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue(&User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testJWTConfig()
	cfg.Secret = "ffffffffffffffffffffffffffffffff"
	other, err := NewTokenIssuer(cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Parse(token); err == nil {
		t.Error("expected token signed with a different key to be rejected")
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue(&User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testJWTConfig()
	cfg.Issuer = "someone-else"
	other, err := NewTokenIssuer(cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Parse(token); err == nil {
		t.Error("expected token with a different issuer to be rejected")
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.expiry = -time.Minute

	token, err := issuer.Issue(&User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Parse(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParse_Tampered(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue(&User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := issuer.Parse(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestParse_Garbage(t *testing.T) {
	issuer := newTestIssuer(t)
	if _, err := issuer.Parse("not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}
