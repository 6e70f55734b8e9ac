package repository

import (
	"context"
	"time"

	"authledger/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the credential store operations
type UserRepository interface {
	// Create inserts a user; a duplicate email yields ErrEmailExists
	Create(ctx context.Context, user *models.User) error
	// GetByID loads a user without the password hash
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByEmail loads a user without the password hash
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByEmailWithPassword is the only read that selects the hash
	GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, lastLoginAt time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// Count returns the number of stored users
	Count(ctx context.Context) (int64, error)
}
