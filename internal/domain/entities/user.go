package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles. Role is the sole authorization
// discriminant; wire values are the literal strings "broker" and "admin".
type UserRole string

const (
	UserRoleBroker UserRole = "broker"
	UserRoleAdmin  UserRole = "admin"
)

// Valid reports whether the role is a member of the closed role set.
func (r UserRole) Valid() bool {
	return r == UserRoleBroker || r == UserRoleAdmin
}

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterInput represents input for registration
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	GSTIN     string `json:"gstin"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateRoleInput represents input for the admin role-update endpoint
type UpdateRoleInput struct {
	Role UserRole `json:"role" binding:"required,oneof=broker admin"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token    string    `json:"token"`
	User     *User     `json:"user"`
	Customer *Customer `json:"customer,omitempty"`
}
