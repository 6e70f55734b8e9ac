package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names seeded by the migrations
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Role represents a role in the system
type Role struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	IsProtected  bool      `json:"isProtected" db:"is_protected"`
	IsAdminGroup bool      `json:"isAdminGroup" db:"is_admin_group"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
