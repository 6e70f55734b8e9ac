// Package ledger records and reads the append-only log of login attempts
package ledger

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"authledger/internal/auth"
	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWriteTimeout bounds a single ledger write
const DefaultWriteTimeout = 5 * time.Second

// UnknownIP is recorded when the client address cannot be resolved
const UnknownIP = "unknown"

// Column widths of login_attempts
const (
	MaxEmailLen   = 255
	MaxIPLen      = 64
	MaxCountryLen = 64
)

// Outcome is the classified result of one login attempt
type Outcome string

const (
	OutcomeSuccess            Outcome = "success"
	OutcomeUserNotFound       Outcome = Outcome(models.FailureUserNotFound)
	OutcomeWrongPassword      Outcome = Outcome(models.FailureWrongPassword)
	OutcomeAccountDeactivated Outcome = Outcome(models.FailureAccountDeactivated)
)

// Classify decides the outcome of a login against the matched user.
// verify is only consulted for an existing, active account.
func Classify(user *models.User, verify func(hash string) bool) Outcome {
	switch {
	case user == nil:
		return OutcomeUserNotFound
	case !user.IsActive:
		return OutcomeAccountDeactivated
	case !verify(user.Password):
		return OutcomeWrongPassword
	default:
		return OutcomeSuccess
	}
}

// Attempt is what the login flow knows about one request
type Attempt struct {
	Email     string
	Password  string // fingerprinted, never stored
	IPAddress string
	UserAgent string
	Country   string
	UserID    *uuid.UUID
	Outcome   Outcome
}

// Ledger writes and reads login attempts
type Ledger struct {
	repo         repository.LoginAttemptRepository
	fp           *auth.Fingerprinter
	log          *zap.Logger
	writeTimeout time.Duration
	now          func() time.Time
}

// New creates a Ledger
func New(repo repository.LoginAttemptRepository, fp *auth.Fingerprinter, log *zap.Logger) *Ledger {
	return &Ledger{
		repo:         repo,
		fp:           fp,
		log:          log,
		writeTimeout: DefaultWriteTimeout,
		now:          time.Now,
	}
}

// Entry converts an Attempt into the row that will be stored
func (l *Ledger) Entry(a Attempt) *models.LoginAttempt {
	email := storable(strings.ToLower(strings.TrimSpace(a.Email)), MaxEmailLen)
	if email == "" {
		email = models.SentinelMissingEmail
	}
	ip := storable(strings.TrimSpace(a.IPAddress), MaxIPLen)
	if ip == "" {
		ip = UnknownIP
	}

	entry := &models.LoginAttempt{
		ID:                  uuid.New(),
		Email:               email,
		PasswordProvided:    a.Password != "",
		PasswordFingerprint: l.fp.Fingerprint(a.Password),
		IPAddress:           ip,
		UserAgent:           storable(a.UserAgent, 0),
		UserID:              a.UserID,
		Country:             storable(a.Country, MaxCountryLen),
		CreatedAt:           l.now().UTC(),
	}

	switch a.Outcome {
	case OutcomeSuccess:
		entry.Success = true
	case OutcomeWrongPassword, OutcomeAccountDeactivated, OutcomeUserNotFound:
		reason := models.FailureReason(a.Outcome)
		entry.FailureReason = &reason
	default:
		l.log.Warn("unclassified login attempt recorded as user_not_found",
			zap.String("outcome", string(a.Outcome)))
		reason := models.FailureUserNotFound
		entry.FailureReason = &reason
	}

	return entry
}

// storable drops NUL bytes and invalid UTF-8, which Postgres text rejects,
// and truncates s to limit characters when limit > 0
func storable(s string, limit int) string {
	s = strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit])
	}
	return s
}

// Record writes exactly one entry for a. It never fails the caller: storage
// errors are logged and dropped. The write is detached from ctx
// cancellation so an aborted request is still audited.
func (l *Ledger) Record(ctx context.Context, a Attempt) {
	entry := l.Entry(a)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.writeTimeout)
	defer cancel()

	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Error("failed to record login attempt",
			zap.Error(err),
			zap.String("email", entry.Email),
			zap.String("ip", entry.IPAddress),
			zap.Bool("success", entry.Success),
		)
	}
}

// ListAll returns the most recent attempts
func (l *Ledger) ListAll(ctx context.Context) ([]models.LoginAttempt, error) {
	return l.repo.List(ctx, repository.LoginAttemptFilter{Limit: repository.MaxListAll})
}

// ListByEmail returns the most recent attempts for one email
func (l *Ledger) ListByEmail(ctx context.Context, email string) ([]models.LoginAttempt, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return l.repo.List(ctx, repository.LoginAttemptFilter{
		Email: &email,
		Limit: repository.MaxListByEmail,
	})
}

// ListFailed returns the most recent failed attempts
func (l *Ledger) ListFailed(ctx context.Context) ([]models.LoginAttempt, error) {
	return l.repo.List(ctx, repository.LoginAttemptFilter{
		FailedOnly: true,
		Limit:      repository.MaxListFailed,
	})
}
