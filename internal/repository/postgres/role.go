package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/google/uuid"
)

type roleRepository struct {
	repository.BaseRepository
}

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(db *sql.DB, timeout time.Duration) repository.RoleRepository {
	return &roleRepository{
		BaseRepository: repository.NewBaseRepository(db, timeout),
	}
}

const selectRole = `
	SELECT id, name, is_protected, is_admin_group, created_at, updated_at
	FROM roles`

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return r.getOne(ctx, selectRole+" WHERE id = $1", id)
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.getOne(ctx, selectRole+" WHERE name = $1", name)
}

func (r *roleRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Role, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	role := &models.Role{}
	err := r.DB().QueryRowContext(ctx, query, arg).Scan(
		&role.ID,
		&role.Name,
		&role.IsProtected,
		&role.IsAdminGroup,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}
