package auth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk/internal/config"
)

const minTokenKeyBytes = 32

// Claims is the JWT claim set issued to API clients. The registered subject
// carries the user ID; uid duplicates it for clients that only read custom
// claims.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"uid"`
}

// TokenIssuer mints and verifies HMAC-signed bearer tokens for the JSON API.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	expiry   time.Duration
	logger   *slog.Logger
}

// NewTokenIssuer builds a TokenIssuer from validated JWT configuration.
// A key shorter than 32 bytes is refused outright; a weak HMAC key makes
// every token forgeable.
func NewTokenIssuer(cfg config.JWTConfig, logger *slog.Logger) (*TokenIssuer, error) {
	if len(cfg.Secret) < minTokenKeyBytes {
		logger.Error("jwt signing key too short", "min_bytes", minTokenKeyBytes, "got_bytes", len(cfg.Secret))
		return nil, fmt.Errorf("jwt signing key must be at least %d bytes, got %d", minTokenKeyBytes, len(cfg.Secret))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid jwt config: %w", err)
	}

	return &TokenIssuer{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   cfg.Expiry(),
		logger:   logger,
	}, nil
}

// Issue creates a signed token for the given user. Every token carries a
// fresh jti so individual tokens remain distinguishable in logs.
func (t *TokenIssuer) Issue(user *User) (string, error) {
	t.logger.Debug("issuing token", "user_id", user.ID)

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
			ID:        uuid.NewString(),
		},
		Email:  user.Email,
		UserID: user.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	t.logger.Debug("token issued", "user_id", user.ID, "jti", claims.ID)
	return signed, nil
}

// Parse verifies a token's signature, issuer, audience and expiry, and
// returns its claims. Tokens signed with any algorithm other than HS256
// are rejected.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return t.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return claims, nil
}
