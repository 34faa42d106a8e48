package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-music-gateway/internal/domain"
)

// PlaylistRepo provides typed operations for playlists and their track links.
type PlaylistRepo struct {
	db *sql.DB
}

func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{db: db} }

func (r *PlaylistRepo) Create(ctx context.Context, userID int64, name, description string) (*domain.Playlist, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO playlists (user_id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		userID, name, description, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Playlist{
		ID: id, UserID: userID, Name: name, Description: description,
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

func (r *PlaylistRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, COALESCE(spotify_playlist_id, ''), created_at, updated_at
		FROM playlists WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []domain.Playlist{}
	for rows.Next() {
		var p domain.Playlist
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description,
			&p.SpotifyPlaylistID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// GetOwned returns the playlist only when it belongs to userID; any other case
// is domain.ErrNotFound so callers can't probe other users' playlists.
func (r *PlaylistRepo) GetOwned(ctx context.Context, playlistID, userID int64) (*domain.Playlist, error) {
	var p domain.Playlist
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, COALESCE(spotify_playlist_id, ''), created_at, updated_at
		FROM playlists WHERE id = ? AND user_id = ?`, playlistID, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.SpotifyPlaylistID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("playlist: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan playlist: %w", err)
	}
	return &p, nil
}

// AddTrack links a track into a playlist. Duplicate links are allowed; there is
// no uniqueness constraint on (playlist_id, track_id).
func (r *PlaylistRepo) AddTrack(ctx context.Context, playlistID, trackID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlist_tracks (playlist_id, track_id, added_at) VALUES (?, ?, ?)`,
		playlistID, trackID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert playlist track: %w", err)
	}
	return nil
}

func (r *PlaylistRepo) ListTracks(ctx context.Context, playlistID int64) ([]domain.Track, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.spotify_track_id, t.name, t.artist, t.album, t.duration_ms, t.preview_url, t.image_url, t.created_at
		FROM playlist_tracks pt
		JOIN tracks t ON t.id = pt.track_id
		WHERE pt.playlist_id = ?
		ORDER BY pt.added_at`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist tracks: %w", err)
	}
	defer rows.Close()

	tracks := []domain.Track{}
	for rows.Next() {
		var t domain.Track
		if err := rows.Scan(&t.ID, &t.SpotifyTrackID, &t.Name, &t.Artist, &t.Album,
			&t.DurationMS, &t.PreviewURL, &t.ImageURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Delete removes a playlist; its link rows go with it via ON DELETE CASCADE.
func (r *PlaylistRepo) Delete(ctx context.Context, playlistID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, playlistID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}
