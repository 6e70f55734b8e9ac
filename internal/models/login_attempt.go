package models

import (
	"time"

	"github.com/google/uuid"
)

// FailureReason classifies why a login attempt did not succeed
type FailureReason string

const (
	FailureUserNotFound       FailureReason = "user_not_found"
	FailureWrongPassword      FailureReason = "wrong_password"
	FailureAccountDeactivated FailureReason = "account_deactivated"
)

// Valid reports whether r is one of the known causes
func (r FailureReason) Valid() bool {
	switch r {
	case FailureUserNotFound, FailureWrongPassword, FailureAccountDeactivated:
		return true
	}
	return false
}

// Sentinel emails recorded when the request could not supply one
const (
	SentinelMissingEmail = "missing_email"
	SentinelSystemError  = "system_error"
)

// LoginAttempt is one immutable ledger entry
type LoginAttempt struct {
	ID                  uuid.UUID      `json:"id"`
	Email               string         `json:"email"`
	PasswordProvided    bool           `json:"passwordProvided"`
	PasswordFingerprint string         `json:"passwordFingerprint,omitempty"`
	IPAddress           string         `json:"ipAddress"`
	UserAgent           string         `json:"userAgent"`
	Success             bool           `json:"success"`
	FailureReason       *FailureReason `json:"failureReason"`
	UserID              *uuid.UUID     `json:"userId"`
	User                *AttemptUser   `json:"user,omitempty"`
	Country             string         `json:"country"`
	CreatedAt           time.Time      `json:"timestamp"`
	Seq                 int64          `json:"-"`
}

// AttemptUser is the user summary joined onto listed attempts
type AttemptUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// LoginAttemptCounts are the raw aggregates read from storage
type LoginAttemptCounts struct {
	Total        int64
	Successful   int64
	Failed       int64
	Today        int64
	UniqueIPs    int64
	UniqueEmails int64
}

// LoginAttemptStats summarises the ledger
type LoginAttemptStats struct {
	TotalAttempts      int64   `json:"totalAttempts"`
	SuccessfulAttempts int64   `json:"successfulAttempts"`
	FailedAttempts     int64   `json:"failedAttempts"`
	SuccessRate        float64 `json:"successRate"`
	TodayAttempts      int64   `json:"todayAttempts"`
	UniqueIPs          int64   `json:"uniqueIPs"`
	UniqueEmails       int64   `json:"uniqueEmails"`
}
