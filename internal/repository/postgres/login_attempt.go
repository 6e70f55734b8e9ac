package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/google/uuid"
)

type loginAttemptRepository struct {
	repository.BaseRepository
}

// NewLoginAttemptRepository creates a new PostgreSQL ledger repository
func NewLoginAttemptRepository(db *sql.DB, timeout time.Duration) repository.LoginAttemptRepository {
	return &loginAttemptRepository{
		BaseRepository: repository.NewBaseRepository(db, timeout),
	}
}

func (r *loginAttemptRepository) Create(ctx context.Context, attempt *models.LoginAttempt) error {
	if attempt.Success != (attempt.FailureReason == nil) {
		return fmt.Errorf("%w: failure reason must be set iff the attempt failed", repository.ErrInvalidAttempt)
	}
	if attempt.FailureReason != nil && !attempt.FailureReason.Valid() {
		return fmt.Errorf("%w: unknown failure reason %q", repository.ErrInvalidAttempt, *attempt.FailureReason)
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	var reason sql.NullString
	if attempt.FailureReason != nil {
		reason = sql.NullString{String: string(*attempt.FailureReason), Valid: true}
	}

	query := `
		INSERT INTO login_attempts (
			id, email, password_provided, password_fingerprint, ip_address,
			user_agent, success, failure_reason, user_id, country, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING seq`

	return r.DB().QueryRowContext(ctx, query,
		attempt.ID,
		attempt.Email,
		attempt.PasswordProvided,
		attempt.PasswordFingerprint,
		attempt.IPAddress,
		attempt.UserAgent,
		attempt.Success,
		reason,
		attempt.UserID,
		attempt.Country,
		attempt.CreatedAt,
	).Scan(&attempt.Seq)
}

func (r *loginAttemptRepository) List(ctx context.Context, filter repository.LoginAttemptFilter) ([]models.LoginAttempt, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argCount := 1

	if filter.Email != nil {
		conditions = append(conditions, fmt.Sprintf("la.email = $%d", argCount))
		args = append(args, *filter.Email)
		argCount++
	}
	if filter.FailedOnly {
		conditions = append(conditions, "la.success = false")
	}

	query := `
		SELECT la.id, la.seq, la.email, la.password_provided, la.password_fingerprint,
		       la.ip_address, la.user_agent, la.success, la.failure_reason,
		       la.user_id, la.country, la.created_at,
		       u.first_name, u.last_name, u.email
		FROM login_attempts la
		LEFT JOIN users u ON la.user_id = u.id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > repository.MaxListAll {
		limit = repository.MaxListAll
	}
	query += fmt.Sprintf(" ORDER BY la.created_at DESC, la.seq DESC LIMIT $%d", argCount)
	args = append(args, limit)

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]models.LoginAttempt, 0)
	for rows.Next() {
		var (
			a                         models.LoginAttempt
			reason                    sql.NullString
			userID                    uuid.NullUUID
			firstName, lastName, mail sql.NullString
		)
		err := rows.Scan(
			&a.ID,
			&a.Seq,
			&a.Email,
			&a.PasswordProvided,
			&a.PasswordFingerprint,
			&a.IPAddress,
			&a.UserAgent,
			&a.Success,
			&reason,
			&userID,
			&a.Country,
			&a.CreatedAt,
			&firstName,
			&lastName,
			&mail,
		)
		if err != nil {
			return nil, err
		}

		if reason.Valid {
			fr := models.FailureReason(reason.String)
			a.FailureReason = &fr
		}
		if userID.Valid {
			id := userID.UUID
			a.UserID = &id
		}
		if mail.Valid {
			a.User = &models.AttemptUser{
				FirstName: firstName.String,
				LastName:  lastName.String,
				Email:     mail.String,
			}
		}
		attempts = append(attempts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *loginAttemptRepository) Counts(ctx context.Context, since time.Time) (models.LoginAttemptCounts, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE success),
		       COUNT(*) FILTER (WHERE NOT success),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COUNT(DISTINCT ip_address),
		       COUNT(DISTINCT email)
		FROM login_attempts`

	var c models.LoginAttemptCounts
	err := r.DB().QueryRowContext(ctx, query, since).Scan(
		&c.Total,
		&c.Successful,
		&c.Failed,
		&c.Today,
		&c.UniqueIPs,
		&c.UniqueEmails,
	)
	return c, err
}
