package repository

import (
	"context"
	"time"

	"authledger/internal/models"
)

// Hard caps on the ledger listings
const (
	MaxListAll     = 1000
	MaxListFailed  = 500
	MaxListByEmail = 100
)

// LoginAttemptRepository is the append-only ledger store. It has no update
// or delete operations.
type LoginAttemptRepository interface {
	Create(ctx context.Context, attempt *models.LoginAttempt) error
	// List returns attempts newest first; ties are broken by insertion order
	List(ctx context.Context, filter LoginAttemptFilter) ([]models.LoginAttempt, error)
	Counts(ctx context.Context, since time.Time) (models.LoginAttemptCounts, error)
}

// LoginAttemptFilter defines the filter options for listing attempts
type LoginAttemptFilter struct {
	Email      *string // Exact, already lowercased
	FailedOnly bool
	Limit      int
}
