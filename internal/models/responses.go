package models

// AuthResponse is returned by register and login
type AuthResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    PublicProfile `json:"user"`
	Message string        `json:"message"`
}

// UserResponse wraps a single profile
type UserResponse struct {
	Success bool          `json:"success"`
	User    PublicProfile `json:"user"`
}

// LoginAttemptsResponse is the envelope of the ledger listing endpoints
type LoginAttemptsResponse struct {
	Success  bool           `json:"success"`
	Count    int            `json:"count"`
	Attempts []LoginAttempt `json:"attempts"`
}

// LoginStatsResponse wraps the ledger statistics
type LoginStatsResponse struct {
	Success bool              `json:"success"`
	Stats   LoginAttemptStats `json:"stats"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail builds an ErrorResponse
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// OK builds a SuccessResponse
func OK(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}
