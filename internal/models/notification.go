package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types used by the dashboard.
const (
	NotificationJournal  = "journal"
	NotificationExam     = "exam"
	NotificationScore    = "score"
	NotificationActivity = "activity"
	NotificationChat     = "chat"
)

// Notification is an in-app notification row. Written server-side when a user
// action completes; a failed notification write never fails the parent action.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
}
