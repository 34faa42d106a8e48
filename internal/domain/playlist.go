package domain

import "time"

type Playlist struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	SpotifyPlaylistID string    `json:"spotify_playlist_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PlaylistTrack links a track into a playlist. Link rows are removed when the
// owning playlist is deleted; duplicate links for the same track are allowed.
type PlaylistTrack struct {
	ID         int64     `json:"id"`
	PlaylistID int64     `json:"playlist_id"`
	TrackID    int64     `json:"track_id"`
	Position   int       `json:"position,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type AddPlaylistTrackRequest struct {
	SpotifyTrackID string `json:"spotify_track_id" validate:"required"`
}
