// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"authledger/internal/api/routes"
	"authledger/internal/auth"
	"authledger/internal/config"
	"authledger/internal/ledger"
	"authledger/internal/models"
	"authledger/internal/repository"
	"authledger/internal/repository/postgres"
	"authledger/internal/testutil/db"
	"authledger/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// LoadTestConfig loads the test configuration
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return db.LoadTestConfig(t)
}

// TestContext holds common test dependencies backed by a real database
type TestContext struct {
	T                *testing.T
	DB               *sql.DB
	Config           *config.Config
	Log              *zap.Logger
	UserRepo         repository.UserRepository
	RoleRepo         repository.RoleRepository
	LoginAttemptRepo repository.LoginAttemptRepository
	AuthService      *auth.Service
	Ledger           *ledger.Ledger
	Router           *gin.Engine
}

// NewTestContext creates a new test context with all dependencies
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := LoadTestConfig(t)
	require.NoError(t, validation.Initialize(cfg.Auth.PasswordMinLength), "Failed to register validators")

	testDB := db.SetupTestDB(t, &cfg.Database)
	log := zaptest.NewLogger(t)

	deps := routes.NewDependencies(cfg, testDB, log)
	router, err := routes.SetupRoutes(deps)
	require.NoError(t, err, "Failed to set up routes")

	tc := &TestContext{
		T:                t,
		DB:               testDB,
		Config:           cfg,
		Log:              log,
		UserRepo:         postgres.NewUserRepository(testDB, cfg.Database.QueryTimeout),
		RoleRepo:         postgres.NewRoleRepository(testDB, cfg.Database.QueryTimeout),
		LoginAttemptRepo: postgres.NewLoginAttemptRepository(testDB, cfg.Database.QueryTimeout),
		AuthService:      deps.AuthService,
		Ledger:           deps.Ledger,
		Router:           router,
	}

	t.Cleanup(func() {
		tc.cleanup()
	})

	return tc
}

// cleanup performs necessary cleanup after tests
func (tc *TestContext) cleanup() {
	if tc.DB != nil {
		if err := db.CleanupTestDB(tc.DB); err != nil {
			tc.T.Errorf("Failed to cleanup test database: %v", err)
		}
		tc.DB.Close()
	}
}

// CreateTestUser creates an active user with the given email and password
func (tc *TestContext) CreateTestUser(email, password string, isAdmin bool) *models.User {
	tc.T.Helper()

	roleName := models.RoleUser
	if isAdmin {
		roleName = models.RoleAdmin
	}
	role, err := tc.RoleRepo.GetByName(context.Background(), roleName)
	require.NoError(tc.T, err, "Failed to get role")

	hash, err := tc.AuthService.HashPassword(password)
	require.NoError(tc.T, err, "Failed to hash password")

	user := &models.User{
		FirstName:   "Test",
		LastName:    "User",
		Email:       email,
		Password:    hash,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "other",
		RoleID:      role.ID,
		Role:        role,
		IsActive:    true,
	}

	err = tc.UserRepo.Create(context.Background(), user)
	require.NoError(tc.T, err, "Failed to create test user")

	return user
}

// GetTestJWT generates a session token for user
func (tc *TestContext) GetTestJWT(user *models.User) string {
	tc.T.Helper()
	token, _, err := tc.AuthService.GenerateToken(user)
	require.NoError(tc.T, err, "Failed to generate test JWT")
	return token
}

// ExecuteSQL executes a raw SQL query for testing
func (tc *TestContext) ExecuteSQL(query string, args ...interface{}) {
	tc.T.Helper()
	_, err := tc.DB.ExecContext(context.Background(), query, args...)
	require.NoError(tc.T, err)
}
