package repository

import "errors"

var (
	// Common errors
	ErrNotFound = errors.New("not found")

	// User errors
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")

	// Role errors
	ErrRoleNotFound = errors.New("role not found")

	// Login attempt errors
	ErrInvalidAttempt = errors.New("invalid login attempt")
)
