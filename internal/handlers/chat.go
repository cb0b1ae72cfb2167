package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/campuscalm/campuscalm-backend/internal/services"
)

type ChatRequest struct {
	Message string `json:"message"`
	Mood    string `json:"mood,omitempty"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Response string `json:"response,omitempty"`
	Source   string `json:"source,omitempty"`
}

type ChatHistoryResponse struct {
	Success  bool                  `json:"success"`
	Messages []models.ChatExchange `json:"messages"`
	HasMore  bool                  `json:"has_more"`
}

// Chat produces a supportive reply for the user's message. The responder
// itself degrades to canned text on upstream failure, so this handler never
// returns an error for the completion call. Each exchange is persisted to
// the Mongo history asynchronously.
func Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if len(req.Message) > 2000 {
		writeError(w, http.StatusBadRequest, "Message must be at most 2000 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	reply, source := services.RespondToChat(ctx, req.Message, req.Mood)

	services.SaveChatExchangeAsync(models.ChatExchange{
		UserID:    userID.String(),
		Mood:      req.Mood,
		Message:   req.Message,
		Response:  reply,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	})

	if source == models.ChatSourceFallback {
		services.NotifyUser(userID,
			"Companion offline",
			"Your wellness companion is briefly unavailable, so you received a standard supportive reply.",
			models.NotificationChat)
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success:  true,
		Response: reply,
		Source:   source,
	})
}

// GetChatHistory loads the user's paginated chat history from MongoDB.
// Query params:
//
//	before (optional RFC3339 timestamp for pagination)
//	limit  (optional, default 50)
func GetChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := int64(50)
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.ParseInt(lStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before *time.Time
	if bStr := r.URL.Query().Get("before"); bStr != "" {
		if t, err := time.Parse(time.RFC3339, bStr); err == nil {
			before = &t
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msgs, hasMore, err := services.LoadChatHistory(ctx, userID.String(), before, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	if msgs == nil {
		msgs = []models.ChatExchange{}
	}

	writeJSON(w, http.StatusOK, ChatHistoryResponse{
		Success:  true,
		Messages: msgs,
		HasMore:  hasMore,
	})
}
