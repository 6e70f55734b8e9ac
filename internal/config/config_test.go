package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoadFromEnv tests loading configuration from environment variables
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test_secret_key")
	t.Setenv("DB_NAME", "authledger_test")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	// Verify configuration values
	require.Equal(t, "8080", cfg.API.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "postgres", cfg.Database.User)
	require.Equal(t, "authledger_test", cfg.Database.DBName)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	require.Equal(t, "test_secret_key", cfg.Auth.JWTSecret)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.JWTExpiresIn)
	require.Equal(t, 6, cfg.Auth.PasswordMinLength)
	require.False(t, cfg.Auth.CookieSecure)
	require.Equal(t, "test_secret_key", cfg.Auth.FingerprintSecret, "fingerprint secret falls back to the JWT secret")
	require.Equal(t, 30, cfg.RateLimit.Requests)
	require.True(t, cfg.Report.Enabled)
	require.Equal(t, "0 0 * * *", cfg.Report.Schedule)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_JWT_EXPIRES_IN", "2h")
	t.Setenv("AUTH_FINGERPRINT_SECRET", "other")
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("API_TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	cfg := &Config{}
	require.NoError(t, cfg.LoadFromEnv())

	require.Equal(t, 2*time.Hour, cfg.Auth.JWTExpiresIn)
	require.Equal(t, "other", cfg.Auth.FingerprintSecret)
	require.True(t, cfg.Auth.CookieSecure)
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.API.TrustedProxies)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Missing JWT Secret",
			env:  map[string]string{},
		},
		{
			name: "Non-positive Expiry",
			env:  map[string]string{"AUTH_JWT_SECRET": "x", "AUTH_JWT_EXPIRES_IN": "0s"},
		},
		{
			name: "Bad Duration",
			env:  map[string]string{"AUTH_JWT_SECRET": "x", "AUTH_JWT_EXPIRES_IN": "seven days"},
		},
		{
			name: "Zero Password Length",
			env:  map[string]string{"AUTH_JWT_SECRET": "x", "AUTH_PASSWORD_MIN_LENGTH": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := &Config{}
			require.Error(t, cfg.LoadFromEnv())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	require.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", d.DSN())
	require.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", d.MigrateURL())
}
