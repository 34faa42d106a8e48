package music

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
)

// TrackStore is the minimal track persistence interface the service requires.
type TrackStore interface {
	GetBySpotifyID(ctx context.Context, spotifyID string) (*domain.Track, error)
	Upsert(ctx context.Context, t *domain.Track) (*domain.Track, error)
}

// PlaylistStore is the minimal playlist persistence interface the service requires.
type PlaylistStore interface {
	Create(ctx context.Context, userID int64, name, description string) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Playlist, error)
	GetOwned(ctx context.Context, playlistID, userID int64) (*domain.Playlist, error)
	AddTrack(ctx context.Context, playlistID, trackID int64) error
	ListTracks(ctx context.Context, playlistID int64) ([]domain.Track, error)
	Delete(ctx context.Context, playlistID int64) error
}

type Service interface {
	GetTrack(ctx context.Context, spotifyID string) (*domain.Track, error)
	CreatePlaylist(ctx context.Context, userID int64, req domain.CreatePlaylistRequest) (*domain.Playlist, error)
	ListPlaylists(ctx context.Context, userID int64) ([]domain.Playlist, error)
	AddPlaylistTrack(ctx context.Context, userID, playlistID int64, spotifyTrackID string) error
	ListPlaylistTracks(ctx context.Context, userID, playlistID int64) ([]domain.Track, error)
	DeletePlaylist(ctx context.Context, userID, playlistID int64) error
}

type service struct {
	cache     cache.Store
	tracks    TrackStore
	playlists PlaylistStore
	upstream  spotify.Provider
	log       *slog.Logger
}

func NewService(c cache.Store, tracks TrackStore, playlists PlaylistStore, upstream spotify.Provider, log *slog.Logger) Service {
	return &service{cache: c, tracks: tracks, playlists: playlists, upstream: upstream, log: log}
}

// GetTrack is the read-through path: cache, then repository, then upstream.
// The repository write happens before the cache write, so a cache hit can
// never expose a value absent from the source of truth.
func (s *service) GetTrack(ctx context.Context, spotifyID string) (*domain.Track, error) {
	key := "track:" + spotifyID
	if raw, ok := s.cache.Get(ctx, key); ok {
		var t domain.Track
		if err := json.Unmarshal([]byte(raw), &t); err == nil {
			return &t, nil
		}
		s.log.Warn("discarding undecodable cache entry", "key", key)
	}

	track, err := s.tracks.GetBySpotifyID(ctx, spotifyID)
	if err != nil {
		track, err = s.fetchAndStore(ctx, spotifyID)
		if err != nil {
			return nil, err
		}
	}

	s.cacheTrack(ctx, key, track)
	return track, nil
}

func (s *service) fetchAndStore(ctx context.Context, spotifyID string) (*domain.Track, error) {
	upstream := s.upstream.GetTrack(ctx, spotifyID)
	stored, err := s.tracks.Upsert(ctx, trackFromUpstream(upstream))
	if err != nil {
		return nil, fmt.Errorf("persist track: %w", err)
	}
	return stored, nil
}

func (s *service) cacheTrack(ctx context.Context, key string, t *domain.Track) {
	raw, err := json.Marshal(t)
	if err != nil {
		s.log.Warn("failed to marshal track for cache", "key", key, "err", err)
		return
	}
	s.cache.Set(ctx, key, string(raw), cache.TTLTrack)
}

func (s *service) CreatePlaylist(ctx context.Context, userID int64, req domain.CreatePlaylistRequest) (*domain.Playlist, error) {
	p, err := s.playlists.Create(ctx, userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	s.log.Info("playlist created", "playlist_id", p.ID, "user_id", userID)
	return p, nil
}

func (s *service) ListPlaylists(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	return s.playlists.ListByUser(ctx, userID)
}

// AddPlaylistTrack verifies ownership before any upstream work, fetching and
// persisting the track on a repository miss. Repeated adds of the same track
// create additional link rows.
func (s *service) AddPlaylistTrack(ctx context.Context, userID, playlistID int64, spotifyTrackID string) error {
	if _, err := s.playlists.GetOwned(ctx, playlistID, userID); err != nil {
		return err
	}

	track, err := s.tracks.GetBySpotifyID(ctx, spotifyTrackID)
	if err != nil {
		track, err = s.fetchAndStore(ctx, spotifyTrackID)
		if err != nil {
			return err
		}
	}

	if err := s.playlists.AddTrack(ctx, playlistID, track.ID); err != nil {
		return err
	}
	s.log.Info("track added to playlist", "playlist_id", playlistID, "track_id", track.ID)
	return nil
}

func (s *service) ListPlaylistTracks(ctx context.Context, userID, playlistID int64) ([]domain.Track, error) {
	if _, err := s.playlists.GetOwned(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.playlists.ListTracks(ctx, playlistID)
}

func (s *service) DeletePlaylist(ctx context.Context, userID, playlistID int64) error {
	if _, err := s.playlists.GetOwned(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

// trackFromUpstream flattens the provider's track shape into a catalog record.
func trackFromUpstream(t *spotify.Track) *domain.Track {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	imageURL := ""
	if len(t.Album.Images) > 0 {
		imageURL = t.Album.Images[0].URL
	}
	return &domain.Track{
		SpotifyTrackID: t.ID,
		Name:           t.Name,
		Artist:         strings.Join(names, ", "),
		Album:          t.Album.Name,
		DurationMS:     t.DurationMS,
		PreviewURL:     t.PreviewURL,
		ImageURL:       imageURL,
	}
}
