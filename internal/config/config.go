// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MySQL connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// JWT holds token signing settings for the JSON API.
	JWT JWTConfig

	// Session holds web session settings for the server-rendered app.
	Session SessionConfig

	// Seed holds the bootstrap admin account settings.
	Seed SeedConfig
}

// DatabaseConfig holds MySQL connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MySQL address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MySQL username (default: "staffdesk").
	User string

	// Password is the MySQL password (default: "staffdesk").
	Password string

	// Name is the database name (default: "staffdesk").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// JWTConfig holds the signing settings for API bearer tokens. All four
// fields must be present and well-formed at startup; the token issuer
// refuses to construct otherwise.
type JWTConfig struct {
	// Secret is the HS256 signing key. Must be at least 32 bytes.
	Secret string

	// Issuer is the iss claim stamped on every token.
	Issuer string

	// Audience is the aud claim stamped on every token.
	Audience string

	// ExpiryMinutes is the token lifetime in minutes. Must be positive.
	ExpiryMinutes int
}

// SessionConfig holds web session settings.
type SessionConfig struct {
	// TTL is how long sessions last before expiring.
	TTL time.Duration
}

// SeedConfig holds the bootstrap admin account created on first startup.
type SeedConfig struct {
	// AdminEmail is the seeded administrator's email address.
	AdminEmail string

	// AdminPassword is the seeded administrator's initial password.
	AdminPassword string

	// AdminName is the seeded administrator's display name.
	AdminName string
}

// devJWTSecret is the development-only signing key (44 bytes, satisfies the
// HS256 minimum). Production refuses to start with it.
const devJWTSecret = "dev-jwt-secret-key-do-not-use-in-production!"

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing or malformed.
func Load() (*Config, error) {
	// Token lifetime feeds directly into minted claims, so a value that does
	// not parse must stop startup rather than silently fall back.
	jwtExpiry, err := getEnvIntStrict("JWT_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "staffdesk"),
			Password:        getEnv("DB_PASSWORD", "staffdesk"),
			Name:            getEnv("DB_NAME", "staffdesk"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "staffdesk"),
			Audience:      getEnv("JWT_AUDIENCE", "staffdesk-clients"),
			ExpiryMinutes: jwtExpiry,
		},

		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 720*time.Hour),
		},

		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@system.com"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "Admin@123"),
			AdminName:     getEnv("SEED_ADMIN_NAME", "System Administrator"),
		},
	}

	// Signing settings are a fatal startup condition, never a per-request
	// error. Production requires an explicit key; development falls back to
	// a fixed key so local runs work without a .env file.
	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = devJWTSecret
	}
	if err := cfg.JWT.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the signing configuration is complete and well-formed.
// Also enforced by the token issuer constructor, so a misconfigured process
// can never mint tokens even if this check is bypassed.
func (j JWTConfig) Validate() error {
	if len(j.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes for HS256, got %d", len(j.Secret))
	}
	if j.Issuer == "" {
		return fmt.Errorf("JWT_ISSUER is required")
	}
	if j.Audience == "" {
		return fmt.Errorf("JWT_AUDIENCE is required")
	}
	if j.ExpiryMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRY_MINUTES must be a positive integer, got %d", j.ExpiryMinutes)
	}
	return nil
}

// Expiry returns the configured token lifetime as a duration.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryMinutes) * time.Minute
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvIntStrict reads an integer env var or returns the default when unset.
// Unlike getEnvInt, a set-but-malformed value is an error.
func getEnvIntStrict(key string, defaultVal int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, val)
	}
	return i, nil
}

// getEnvDuration reads a duration env var (e.g., "720h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
