package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type userRepository struct {
	repository.BaseRepository
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB, timeout time.Duration) repository.UserRepository {
	return &userRepository{
		BaseRepository: repository.NewBaseRepository(db, timeout),
	}
}

// NormalizeEmail is the canonical form used for storage and lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// maxEmailLen is the width of users.email
const maxEmailLen = 255

// storableEmail reports whether email could exist in the users table
func storableEmail(email string) bool {
	return utf8.ValidString(email) &&
		!strings.ContainsRune(email, 0) &&
		utf8.RuneCountInString(email) <= maxEmailLen
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (
			id, first_name, last_name, email, password, date_of_birth,
			gender, role_id, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10
		)
		RETURNING created_at, updated_at`

	now := time.Now().UTC()
	user.ID = uuid.New()
	user.Email = NormalizeEmail(user.Email)

	err := r.DB().QueryRowContext(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.DateOfBirth,
		user.Gender,
		user.RoleID,
		user.IsActive,
		now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrEmailExists
	}
	return err
}

// Columns shared by every user read. The password hash is appended only by
// GetByEmailWithPassword.
const userColumns = `
	u.id, u.first_name, u.last_name, u.email, u.date_of_birth, u.gender,
	u.role_id, u.is_active, u.last_login_at, u.created_at, u.updated_at,
	r.id, r.name, r.is_admin_group, r.is_protected, r.created_at, r.updated_at`

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1`
	return r.getOne(ctx, query, id, false)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE LOWER(u.email) = $1`
	email = NormalizeEmail(email)
	if !storableEmail(email) {
		return nil, repository.ErrUserNotFound
	}
	return r.getOne(ctx, query, email, false)
}

func (r *userRepository) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + `, u.password
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE LOWER(u.email) = $1`
	email = NormalizeEmail(email)
	if !storableEmail(email) {
		return nil, repository.ErrUserNotFound
	}
	return r.getOne(ctx, query, email, true)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}, withPassword bool) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := &models.User{Role: &models.Role{}}
	dest := []interface{}{
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.DateOfBirth,
		&user.Gender,
		&user.RoleID,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Role.ID,
		&user.Role.Name,
		&user.Role.IsAdminGroup,
		&user.Role.IsProtected,
		&user.Role.CreatedAt,
		&user.Role.UpdatedAt,
	}
	if withPassword {
		dest = append(dest, &user.Password)
	}

	err := r.DB().QueryRowContext(ctx, query, arg).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, lastLogin time.Time) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET last_login_at = $1, updated_at = $2
		WHERE id = $3`

	return r.execOne(ctx, query, lastLogin, time.Now().UTC(), id)
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET is_active = $1, updated_at = $2
		WHERE id = $3`

	return r.execOne(ctx, query, active, time.Now().UTC(), id)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var n int64
	err := r.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
