package domain

import "time"

type UserProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	SpotifyUserID   string    `json:"spotify_user_id"`
	ProfileImageURL string    `json:"profile_image_url"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UpsertProfileRequest struct {
	DisplayName   string `json:"display_name" validate:"required,max=255"`
	SpotifyUserID string `json:"spotify_user_id"`
}

type SyncSpotifyRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}
