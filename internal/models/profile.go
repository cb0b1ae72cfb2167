package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the dashboard-facing data for a user, including the wellness
// point balance. Exactly one profile exists per user; handlers create it lazily
// when a row is missing (e.g. accounts created before profiles existed).
type Profile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	WellnessPoints int       `json:"wellness_points"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
}
