package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig `envPrefix:"API_"`
	// Auth contains authentication configuration
	Auth AuthConfig `envPrefix:"AUTH_"`
	// Database contains database configuration
	Database DatabaseConfig `envPrefix:"DB_"`
	// Log contains logger configuration
	Log LogConfig `envPrefix:"LOG_"`
	// Report contains the scheduled ledger report configuration
	Report ReportConfig `envPrefix:"REPORT_"`

	// Rate limiting applied to the /auth endpoints
	RateLimit struct {
		Requests int `env:"RATE_LIMIT_REQUESTS" envDefault:"30"` // Number of requests allowed per window
		Window   int `env:"RATE_LIMIT_WINDOW" envDefault:"60"`   // Time window in seconds
		Burst    int `env:"RATE_LIMIT_BURST" envDefault:"10"`    // Maximum burst size
	}
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string `env:"HOST" envDefault:"localhost"`
	// Port is the database server port
	Port int `env:"PORT" envDefault:"5432"`
	// User is the database username
	User string `env:"USER" envDefault:"postgres"`
	// Password is the database password
	Password string `env:"PASSWORD" envDefault:"postgres"`
	// DBName is the database name
	DBName string `env:"NAME" envDefault:"authledger"`
	// SSLMode is the SSL mode for the database connection
	SSLMode string `env:"SSL_MODE" envDefault:"disable"`
	// MigrationsPath is the path to database migrations
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	// QueryTimeout bounds every single storage round-trip
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`
	MaxOpenConns int           `env:"MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	// TrustedProxies restricts which peers may set X-Forwarded-For
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	// JWTSecret is the secret key used to sign JWT tokens
	JWTSecret string `env:"JWT_SECRET,required"`
	// JWTExpiresIn is the lifetime of an issued token
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	// CookieSecure marks the token cookie Secure (production behind TLS)
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`
	// PasswordMinLength is the minimum accepted password length at registration
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
	// FingerprintSecret keys the password fingerprint stored in the ledger.
	// Falls back to JWTSecret when empty.
	FingerprintSecret string `env:"FINGERPRINT_SECRET"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Env   string `env:"ENV" envDefault:"development"`
	Level string `env:"LEVEL" envDefault:"info"`
}

// ReportConfig controls the scheduled ledger summary
type ReportConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Schedule string `env:"SCHEDULE" envDefault:"0 0 * * *"`
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.Auth.JWTExpiresIn <= 0 {
		return fmt.Errorf("AUTH_JWT_EXPIRES_IN must be positive")
	}
	if c.Auth.PasswordMinLength < 1 {
		return fmt.Errorf("AUTH_PASSWORD_MIN_LENGTH must be at least 1")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit requests and window must be positive")
	}
	if c.Auth.FingerprintSecret == "" {
		c.Auth.FingerprintSecret = c.Auth.JWTSecret
	}

	return nil
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MigrateURL returns the connection URL used by golang-migrate
func (d DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}
