package domain

import "time"

// Track is a catalog record persisted lazily on first access.
// SpotifyTrackID is the stable external identifier; repeated upserts with the
// same id overwrite attributes but never create a second row.
type Track struct {
	ID             int64     `json:"id"`
	SpotifyTrackID string    `json:"spotify_track_id"`
	Name           string    `json:"name"`
	Artist         string    `json:"artist"`
	Album          string    `json:"album"`
	DurationMS     int       `json:"duration_ms"`
	PreviewURL     string    `json:"preview_url"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
}
