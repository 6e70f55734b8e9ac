package testutil

import "authledger/internal/models"

// String returns a pointer to the given string
func String(s string) *string {
	return &s
}

// Reason returns a pointer to the given failure reason
func Reason(r models.FailureReason) *models.FailureReason {
	return &r
}
