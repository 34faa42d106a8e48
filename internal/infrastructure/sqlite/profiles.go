package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-music-gateway/internal/domain"
)

// ProfileRepo provides typed operations for the user_profiles table.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, COALESCE(display_name, ''), COALESCE(spotify_user_id, ''),
		       COALESCE(profile_image_url, ''), COALESCE(country, ''), created_at, updated_at
		FROM user_profiles WHERE user_id = ?`, userID))
}

// Upsert inserts or overwrites the profile keyed by user_id, advancing updated_at.
func (r *ProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO user_profiles (user_id, display_name, spotify_user_id, profile_image_url, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			spotify_user_id = excluded.spotify_user_id,
			profile_image_url = excluded.profile_image_url,
			country = excluded.country,
			updated_at = excluded.updated_at
		RETURNING id, user_id, COALESCE(display_name, ''), COALESCE(spotify_user_id, ''),
		          COALESCE(profile_image_url, ''), COALESCE(country, ''), created_at, updated_at`,
		p.UserID, p.DisplayName, p.SpotifyUserID, p.ProfileImageURL, p.Country, now, now,
	)
	return r.scanOne(row)
}

func (r *ProfileRepo) scanOne(row *sql.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.SpotifyUserID,
		&p.ProfileImageURL, &p.Country, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
