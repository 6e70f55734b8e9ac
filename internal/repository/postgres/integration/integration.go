// Package integration provides utilities for postgres integration testing
package integration

import (
	"context"
	"testing"
	"time"

	"authledger/internal/models"
	"authledger/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestContext wraps testutil.TestContext to provide ledger-specific test utilities
type TestContext struct {
	*testutil.TestContext
}

// NewTestContext creates a new test context for postgres integration tests
func NewTestContext(t *testing.T) *TestContext {
	return &TestContext{TestContext: testutil.NewTestContext(t)}
}

// AttemptOption customises a test login attempt
type AttemptOption func(*models.LoginAttempt)

// WithUser links the attempt to a user
func WithUser(id uuid.UUID) AttemptOption {
	return func(a *models.LoginAttempt) { a.UserID = &id }
}

// WithIP sets the source address
func WithIP(ip string) AttemptOption {
	return func(a *models.LoginAttempt) { a.IPAddress = ip }
}

// At sets the creation time
func At(ts time.Time) AttemptOption {
	return func(a *models.LoginAttempt) { a.CreatedAt = ts }
}

// CreateTestLoginAttempt stores an attempt. A nil reason means success.
func (tc *TestContext) CreateTestLoginAttempt(email string, reason *models.FailureReason, opts ...AttemptOption) *models.LoginAttempt {
	tc.T.Helper()

	attempt := &models.LoginAttempt{
		Email:            email,
		PasswordProvided: true,
		IPAddress:        "127.0.0.1",
		UserAgent:        "test-agent",
		Success:          reason == nil,
		FailureReason:    reason,
	}
	for _, opt := range opts {
		opt(attempt)
	}

	err := tc.LoginAttemptRepo.Create(context.Background(), attempt)
	require.NoError(tc.T, err)
	return attempt
}

// CountAttempts returns the number of ledger rows
func (tc *TestContext) CountAttempts() int {
	tc.T.Helper()
	var n int
	err := tc.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM login_attempts").Scan(&n)
	require.NoError(tc.T, err)
	return n
}
