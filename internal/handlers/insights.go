package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/services"
)

const defaultInsightsDays = 30

// MoodCount is the number of entries classified as one mood in the window.
type MoodCount struct {
	Mood  string `json:"mood"`
	Score int    `json:"score"`
	Count int    `json:"count"`
}

// DailyMood is the dominant mood of one day.
type DailyMood struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Mood  string `json:"mood"`
	Score int    `json:"score"`
}

type MoodInsightsResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Days       int         `json:"days"`
	TotalCount int         `json:"total_count"`
	Moods      []MoodCount `json:"moods"`
	Daily      []DailyMood `json:"daily"`
}

// GetMoods returns the static mood metadata (label, score, color, emoji) for
// the dashboard's pickers.
func GetMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"moods":   services.Moods(),
	})
}

// GetMoodInsights aggregates the user's journal entries over the last N days
// (default 30): per-mood entry counts plus the dominant mood per day. The
// default window is cached briefly in Redis and invalidated when a new entry
// lands.
func GetMoodInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	days := defaultInsightsDays
	if dStr := r.URL.Query().Get("days"); dStr != "" {
		if parsed, err := strconv.Atoi(dStr); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}

	// Only the default window is cached; its key is what journal writes
	// invalidate
	cacheKey := services.CacheKey("insights", userID.String())
	if days == defaultInsightsDays {
		var cached MoodInsightsResponse
		if hit, _ := services.Cache.Get(cacheKey, &cached); hit {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -days)

	resp, err := computeMoodInsights(ctx, userID.String(), since, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load mood insights")
		return
	}

	if days == defaultInsightsDays {
		services.Cache.Set(cacheKey, resp)
	}

	writeJSON(w, http.StatusOK, resp)
}

func computeMoodInsights(ctx context.Context, userID string, since time.Time, days int) (*MoodInsightsResponse, error) {
	// Per-mood counts over the window
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT mood_name, COUNT(*)
		FROM journal_entries
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY mood_name
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countsByMood := make(map[string]int)
	total := 0
	for rows.Next() {
		var mood string
		var count int
		if err := rows.Scan(&mood, &count); err != nil {
			return nil, err
		}
		countsByMood[mood] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Every mood appears in the response, zero or not, in display order
	moods := make([]MoodCount, 0, 5)
	for _, info := range services.Moods() {
		moods = append(moods, MoodCount{
			Mood:  info.Name,
			Score: info.Score,
			Count: countsByMood[info.Name],
		})
	}

	// Dominant mood per day: highest count wins, ties resolved by the
	// ordering below so the result is stable
	dayRows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT DATE(created_at), mood_name, COUNT(*)
		FROM journal_entries
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY DATE(created_at), mood_name
		ORDER BY DATE(created_at) ASC, COUNT(*) DESC, mood_name ASC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	daily := make([]DailyMood, 0)
	lastDay := ""
	for dayRows.Next() {
		var day time.Time
		var mood string
		var count int
		if err := dayRows.Scan(&day, &mood, &count); err != nil {
			return nil, err
		}
		dayStr := day.Format("2006-01-02")
		if dayStr == lastDay {
			continue // already have this day's dominant mood
		}
		lastDay = dayStr
		daily = append(daily, DailyMood{
			Date:  dayStr,
			Mood:  mood,
			Score: services.MoodScore(mood),
		})
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	return &MoodInsightsResponse{
		Success:    true,
		Days:       days,
		TotalCount: total,
		Moods:      moods,
		Daily:      daily,
	}, nil
}
