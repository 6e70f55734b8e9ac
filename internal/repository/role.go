package repository

import (
	"context"

	"authledger/internal/models"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role lookups
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
}
