package services

import (
	"context"
	"database/sql"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/google/uuid"
)

// Wellness point rewards per action. All deltas are positive, so the balance
// is monotonically non-decreasing in normal use.
const (
	PointsJournalEntry = 5
	PointsActivity     = 3
	PointsExamAdded    = 2
)

// ApplyPointsDelta adds delta to the user's wellness point balance and returns
// the new total. The increment is a single relative UPDATE so two concurrent
// rewards for the same user both land; a read-then-write here would lose one
// of them. If the profile row is missing it is created lazily first.
func ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	var newTotal int
	err := database.PostgresDB.QueryRowContext(ctx, `
		UPDATE profiles
		SET wellness_points = wellness_points + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING wellness_points
	`, delta, userID).Scan(&newTotal)
	if err == sql.ErrNoRows {
		if _, err := GetOrCreateProfile(ctx, userID); err != nil {
			return 0, err
		}
		err = database.PostgresDB.QueryRowContext(ctx, `
			UPDATE profiles
			SET wellness_points = wellness_points + $1, updated_at = NOW()
			WHERE user_id = $2
			RETURNING wellness_points
		`, delta, userID).Scan(&newTotal)
	}
	if err != nil {
		return 0, err
	}
	return newTotal, nil
}

// GetPoints returns the user's current wellness point balance, creating the
// profile if it does not exist yet.
func GetPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	profile, err := GetOrCreateProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.WellnessPoints, nil
}
