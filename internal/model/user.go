package model

import (
	"github.com/google/uuid"
)

// Role name constants. The set is closed: every user carries exactly one of
// these and all authorization decisions branch on it.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Role is immutable reference data seeded at provisioning time.
type Role struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// User represents any account in the system: admins, doctors and patients
// share one table, the role determines visibility.
type User struct {
	Base
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	RoleID       uuid.UUID `json:"role_id" db:"role_id"`
	RoleName     string    `json:"role" db:"role_name"`
}

// CreateUserRequest represents provisioning parameters. Role is fixed at
// creation; there is no update path that changes it.
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,oneof=admin doctor patient"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Phone       string `json:"phone"`
}
