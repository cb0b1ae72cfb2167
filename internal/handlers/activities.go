package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/campuscalm/campuscalm-backend/internal/services"
)

// Quick actions the dashboard can log for +3 wellness points.
var activityTypes = map[string]string{
	"exercise":   "Exercise logged",
	"breathing":  "Breathing session logged",
	"meditation": "Meditation session logged",
}

type RecordActivityRequest struct {
	Type string `json:"type"`
}

type RecordActivityResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	WellnessPoints int    `json:"wellness_points,omitempty"`
}

// RecordActivity logs a quick action (exercise, breathing, meditation) and
// awards +3 wellness points. Type is validated before anything is written.
func RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title, valid := activityTypes[req.Type]
	if !valid {
		writeError(w, http.StatusBadRequest, "Type must be one of: exercise, breathing, meditation")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	newTotal, err := services.ApplyPointsDelta(ctx, userID, services.PointsActivity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to award points")
		return
	}

	services.NotifyUser(userID,
		title,
		fmt.Sprintf("Nice work! +%d wellness points.", services.PointsActivity),
		models.NotificationActivity)

	writeJSON(w, http.StatusOK, RecordActivityResponse{
		Success:        true,
		Message:        title,
		WellnessPoints: newTotal,
	})
}

// GetPoints returns the user's current wellness point balance.
func GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	points, err := services.GetPoints(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load points")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"wellness_points": points,
	})
}
