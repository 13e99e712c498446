package model

import (
	"github.com/google/uuid"
)

// Identity is the authenticated principal bound to a session. Handlers and
// the authorization policy receive it explicitly, never through globals.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	FullName string    `json:"full_name"`
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
