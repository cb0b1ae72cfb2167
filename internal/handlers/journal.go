package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/campuscalm/campuscalm-backend/internal/services"
	"github.com/google/uuid"
)

type CreateJournalRequest struct {
	Content string `json:"content"`
}

type CreateJournalResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message"`
	Entry          *models.JournalEntry `json:"entry,omitempty"`
	WellnessPoints int                  `json:"wellness_points,omitempty"`
}

type GetJournalsResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int64                 `json:"total"`
}

// CreateJournal classifies and saves a journal entry, then awards +5 wellness
// points and writes a notification. The entry insert is the source of truth:
// if the points or notification step fails afterwards the entry still stands
// (no compensating rollback), matching the rest of the app's one-shot error
// handling.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate before any write
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if len(req.Content) > models.MaxJournalContentLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Content must be at most %d characters", models.MaxJournalContentLength))
		return
	}

	moodName, moodScore := services.ClassifyMood(req.Content)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry := models.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		Content:   req.Content,
		MoodScore: moodScore,
		MoodName:  moodName,
	}

	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, created_at, content, mood_score, mood_name)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.UserID, entry.CreatedAt, entry.Content, entry.MoodScore, entry.MoodName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	}

	// Best-effort follow-ups: the entry is already saved
	newTotal, err := services.ApplyPointsDelta(ctx, userID, services.PointsJournalEntry)
	if err != nil {
		log.Printf("[Journal] points update failed for user %s: %v", userID, err)
	}
	services.NotifyUser(userID,
		"Journal saved",
		fmt.Sprintf("Your entry was logged as %s. +%d wellness points!", moodName, services.PointsJournalEntry),
		models.NotificationJournal)

	// New entries change the mood insights; drop the cached aggregation
	services.Cache.Delete(services.CacheKey("insights", userID.String()))

	writeJSON(w, http.StatusCreated, CreateJournalResponse{
		Success:        true,
		Message:        "Journal entry saved",
		Entry:          &entry,
		WellnessPoints: newTotal,
	})
}

// GetJournals returns the authenticated user's entries, newest first, with
// limit/skip pagination.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	skip := 0
	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		if parsed, err := strconv.Atoi(skipStr); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var total int64
	if err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM journal_entries WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, user_id, created_at, content, mood_score, mood_name
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, limit)
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.Content, &e.MoodScore, &e.MoodName); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
			return
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}

	writeJSON(w, http.StatusOK, GetJournalsResponse{
		Success: true,
		Entries: entries,
		Total:   total,
	})
}

// DeleteJournal removes one of the user's own entries (?id=...). Ownership is
// enforced in the WHERE clause, not by a prior read.
func DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid entry id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := database.PostgresDB.ExecContext(ctx, `
		DELETE FROM journal_entries WHERE id = $1 AND user_id = $2
	`, entryID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete journal entry")
		return
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "Journal entry not found")
		return
	}

	services.Cache.Delete(services.CacheKey("insights", userID.String()))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Journal entry deleted",
	})
}
