package models

// LoginRequest represents a login request. Fields are not bound with
// "required" because a request missing them must still reach the ledger.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
