package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/google/uuid"
)

type GetNotificationsResponse struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message,omitempty"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type MarkReadRequest struct {
	ID  string `json:"id,omitempty"`
	All bool   `json:"all,omitempty"`
}

// GetNotifications returns the user's notifications newest-first, plus the
// unread count for the bell badge.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var unread int64
	if err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE
	`, userID).Scan(&unread); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, user_id, created_at, title, message, type, is_read
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0, limit)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.CreatedAt, &n.Title, &n.Message, &n.Type, &n.IsRead); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load notifications")
			return
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	writeJSON(w, http.StatusOK, GetNotificationsResponse{
		Success:       true,
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

// MarkNotificationsRead marks one notification ({id}) or all of them
// ({all:true}) as read.
func MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if req.All {
		_, err := database.PostgresDB.ExecContext(ctx, `
			UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE
		`, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update notifications")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "All notifications marked as read",
		})
		return
	}

	notifID, err := uuid.Parse(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid notification id is required")
		return
	}

	result, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
	`, notifID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notification marked as read",
	})
}
