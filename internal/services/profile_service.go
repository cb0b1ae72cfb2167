package services

import (
	"context"
	"database/sql"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/google/uuid"
)

// GetOrCreateProfile fetches a user's profile, creating it from the users row
// when missing. Signup creates profiles in the same transaction as the
// account, but accounts that predate profiles (or a failed signup commit)
// still get one lazily here.
func GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := scanProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	var name, email string
	if err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT name, email FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&name, &email); err != nil {
		return nil, err
	}

	// ON CONFLICT guards against a concurrent lazy create for the same user.
	_, err = database.PostgresDB.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, name, email, wellness_points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID, name, email)
	if err != nil {
		return nil, err
	}

	return scanProfile(ctx, userID)
}

func scanProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	var avatarURL sql.NullString
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at, name, email, wellness_points, avatar_url
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.Name, &p.Email, &p.WellnessPoints, &avatarURL)
	if err != nil {
		return nil, err
	}
	p.AvatarURL = avatarURL.String
	return &p, nil
}

// UpdateProfileName changes the display name on both the profile and the
// users row so lazy creates stay consistent.
func UpdateProfileName(ctx context.Context, userID uuid.UUID, name string) (*models.Profile, error) {
	if _, err := GetOrCreateProfile(ctx, userID); err != nil {
		return nil, err
	}
	_, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE profiles SET name = $1, updated_at = NOW() WHERE user_id = $2
	`, name, userID)
	if err != nil {
		return nil, err
	}
	_, err = database.PostgresDB.ExecContext(ctx, `
		UPDATE users SET name = $1 WHERE id = $2
	`, name, userID)
	if err != nil {
		return nil, err
	}
	return scanProfile(ctx, userID)
}

// SetProfileAvatar stores the Cloudinary secure URL for the user's avatar.
func SetProfileAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	if _, err := GetOrCreateProfile(ctx, userID); err != nil {
		return err
	}
	_, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE profiles SET avatar_url = $1, updated_at = NOW() WHERE user_id = $2
	`, url, userID)
	return err
}
