package services

import (
	"context"
	"log"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/google/uuid"
)

// NotifyUser writes an in-app notification for a user. Best-effort: failures
// are logged and swallowed so a broken notification insert never fails the
// action that triggered it.
func NotifyUser(userID uuid.UUID, title, message, notifType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	`, uuid.New(), userID, title, message, notifType)
	if err != nil {
		log.Printf("[Notifications] failed to write notification for user %s: %v", userID, err)
	}
}
