package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
)

const fallbackStreamURL = "https://example.com/mock-stream.mp3"

// TrackLookup resolves a catalog track through the music service's
// cache-aside path.
type TrackLookup interface {
	GetTrack(ctx context.Context, spotifyID string) (*domain.Track, error)
}

type Service interface {
	Play(ctx context.Context, trackID string) (*domain.StreamInfo, error)
	RecordPlayback(ctx context.Context, userID int64, ev domain.PlaybackEventRequest) error
	NowPlaying(ctx context.Context, userID int64) (*domain.NowPlaying, error)
}

type service struct {
	cache  cache.Store
	tracks TrackLookup
	log    *slog.Logger
}

func NewService(c cache.Store, tracks TrackLookup, log *slog.Logger) Service {
	return &service{cache: c, tracks: tracks, log: log}
}

func nowPlayingKey(userID int64) string { return fmt.Sprintf("now-playing:%d", userID) }

// Play resolves the stream payload for a track. In production this would
// return a real streaming URL; for now it exposes the track preview.
func (s *service) Play(ctx context.Context, trackID string) (*domain.StreamInfo, error) {
	key := "stream:" + trackID
	if raw, ok := s.cache.Get(ctx, key); ok {
		var info domain.StreamInfo
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			return &info, nil
		}
		s.log.Warn("discarding undecodable cache entry", "key", key)
	}

	track, err := s.tracks.GetTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	info := &domain.StreamInfo{
		TrackID:    track.SpotifyTrackID,
		Name:       track.Name,
		Artist:     track.Artist,
		PreviewURL: track.PreviewURL,
		DurationMS: track.DurationMS,
		ImageURL:   track.ImageURL,
	}
	if info.PreviewURL == "" {
		info.PreviewURL = fallbackStreamURL
	}

	if raw, err := json.Marshal(info); err == nil {
		s.cache.Set(ctx, key, string(raw), cache.TTLStream)
	}
	s.log.Info("stream requested", "track_id", trackID)
	return info, nil
}

// RecordPlayback logs the event and, for "play" events, refreshes the caller's
// now-playing state.
func (s *service) RecordPlayback(ctx context.Context, userID int64, ev domain.PlaybackEventRequest) error {
	s.log.Info("playback event",
		"user_id", userID, "track_id", ev.TrackID,
		"position_ms", ev.PositionMS, "event", ev.EventType)

	if ev.EventType != "play" {
		return nil
	}
	info, err := s.Play(ctx, ev.TrackID)
	if err != nil {
		return err
	}
	if raw, err := json.Marshal(info); err == nil {
		s.cache.Set(ctx, nowPlayingKey(userID), string(raw), cache.TTLStream)
	}
	return nil
}

func (s *service) NowPlaying(ctx context.Context, userID int64) (*domain.NowPlaying, error) {
	raw, ok := s.cache.Get(ctx, nowPlayingKey(userID))
	if !ok {
		return &domain.NowPlaying{Playing: false}, nil
	}
	var info domain.StreamInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.log.Warn("discarding undecodable cache entry", "key", nowPlayingKey(userID))
		return &domain.NowPlaying{Playing: false}, nil
	}
	return &domain.NowPlaying{Playing: true, Track: &info}, nil
}
