package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row in PostgreSQL. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
}
