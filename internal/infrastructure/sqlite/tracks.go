package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-music-gateway/internal/domain"
)

// TrackRepo provides typed operations for the tracks table. Tracks are created
// lazily on first access and only ever mutated by upsert.
type TrackRepo struct {
	db *sql.DB
}

func NewTrackRepo(db *sql.DB) *TrackRepo { return &TrackRepo{db: db} }

func (r *TrackRepo) GetBySpotifyID(ctx context.Context, spotifyID string) (*domain.Track, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, spotify_track_id, name, artist, album, duration_ms, preview_url, image_url, created_at
		 FROM tracks WHERE spotify_track_id = ?`, spotifyID))
}

// Upsert inserts the track or, when spotify_track_id already exists, overwrites
// its attributes in place. Identical repeated input yields the same stored row.
func (r *TrackRepo) Upsert(ctx context.Context, t *domain.Track) (*domain.Track, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tracks (spotify_track_id, name, artist, album, duration_ms, preview_url, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(spotify_track_id) DO UPDATE SET
			name = excluded.name,
			artist = excluded.artist,
			album = excluded.album,
			duration_ms = excluded.duration_ms,
			preview_url = excluded.preview_url,
			image_url = excluded.image_url
		RETURNING id, spotify_track_id, name, artist, album, duration_ms, preview_url, image_url, created_at`,
		t.SpotifyTrackID, t.Name, t.Artist, t.Album, t.DurationMS, t.PreviewURL, t.ImageURL, time.Now().UTC(),
	)
	return r.scanOne(row)
}

func (r *TrackRepo) scanOne(row *sql.Row) (*domain.Track, error) {
	var t domain.Track
	err := row.Scan(&t.ID, &t.SpotifyTrackID, &t.Name, &t.Artist, &t.Album,
		&t.DurationMS, &t.PreviewURL, &t.ImageURL, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("track: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan track: %w", err)
	}
	return &t, nil
}
