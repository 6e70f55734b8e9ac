package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	RoleID      uuid.UUID  `json:"roleId"`
	Role        *Role      `json:"role,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PublicProfile is the user representation returned to callers
type PublicProfile struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// PublicProfile strips the credential and flattens the role
func (u *User) PublicProfile() PublicProfile {
	p := PublicProfile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.Role != nil {
		p.Role = u.Role.Name
	}
	return p
}

// IsAdmin returns true if the user has an admin role
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.IsAdminGroup
}

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	FirstName   string     `json:"firstName" binding:"required,notblank,max=100"`
	LastName    string     `json:"lastName" binding:"required,notblank,max=100"`
	Email       string     `json:"email" binding:"required,email,max=255"`
	Password    string     `json:"password" binding:"required,passwordlen,max=72"`
	DateOfBirth *time.Time `json:"dateOfBirth" binding:"required,pastdate"`
	Gender      string     `json:"gender" binding:"required,notblank,max=30"`
}

// UpdateStatusRequest activates or deactivates an account
type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
