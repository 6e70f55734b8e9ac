package repository

import (
	"context"
	"database/sql"
	"time"
)

// DefaultQueryTimeout bounds a storage round-trip when none is configured
const DefaultQueryTimeout = 5 * time.Second

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB, timeout time.Duration) BaseRepository {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return BaseRepository{db: db, timeout: timeout}
}

// DB returns the database connection
func (r *BaseRepository) DB() *sql.DB {
	return r.db
}

// WithTimeout derives the context used for a single storage call
func (r *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

//go:generate mockgen -destination=../mocks/user_repository.go -package=mocks authledger/internal/repository UserRepository
//go:generate mockgen -destination=../mocks/role_repository.go -package=mocks authledger/internal/repository RoleRepository
//go:generate mockgen -destination=../mocks/login_attempt_repository.go -package=mocks authledger/internal/repository LoginAttemptRepository
