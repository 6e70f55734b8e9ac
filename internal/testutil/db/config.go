package db

import (
	"path/filepath"
	"runtime"
	"testing"

	"authledger/internal/config"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

// ProjectRoot returns the absolute path of the module root
func ProjectRoot(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Failed to get current file path")

	// Project root is 3 levels up from this file
	root, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", ".."))
	require.NoError(t, err, "Failed to get absolute project root path")
	return root
}

func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := ProjectRoot(t)

	err := godotenv.Load(filepath.Join(root, ".env.test"))
	require.NoError(t, err, "Failed to load .env.test file")

	cfg := &config.Config{}
	err = cfg.LoadFromEnv()
	require.NoError(t, err, "Failed to load config")

	// Only override migrations path to ensure it's absolute
	cfg.Database.MigrationsPath = filepath.Join(root, "migrations")

	return cfg
}
