package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
)

// ProfileStore is the minimal profile persistence interface the service requires.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error)
}

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, userID int64, req domain.UpsertProfileRequest) (*domain.UserProfile, error)
	SyncSpotify(ctx context.Context, userID int64, accessToken string) (*domain.UserProfile, error)
}

type service struct {
	cache    cache.Store
	profiles ProfileStore
	upstream spotify.Provider
	log      *slog.Logger
}

func NewService(c cache.Store, profiles ProfileStore, upstream spotify.Provider, log *slog.Logger) Service {
	return &service{cache: c, profiles: profiles, upstream: upstream, log: log}
}

func profileKey(userID int64) string { return fmt.Sprintf("profile:%d", userID) }

func (s *service) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	key := profileKey(userID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var p domain.UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
		s.log.Warn("discarding undecodable cache entry", "key", key)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, p)
	return p, nil
}

// UpsertProfile writes the repository first, then refreshes the cache so a
// subsequent cached read reflects the stored row.
func (s *service) UpsertProfile(ctx context.Context, userID int64, req domain.UpsertProfileRequest) (*domain.UserProfile, error) {
	p, err := s.profiles.Upsert(ctx, &domain.UserProfile{
		UserID:        userID,
		DisplayName:   req.DisplayName,
		SpotifyUserID: req.SpotifyUserID,
	})
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, p)
	s.log.Info("profile updated", "user_id", userID)
	return p, nil
}

// SyncSpotify pulls the caller's upstream profile and mirrors it locally.
// The upstream client degrades to mock data rather than failing.
func (s *service) SyncSpotify(ctx context.Context, userID int64, accessToken string) (*domain.UserProfile, error) {
	remote := s.upstream.GetUserProfile(ctx, accessToken)

	imageURL := ""
	if len(remote.Images) > 0 {
		imageURL = remote.Images[0].URL
	}
	p, err := s.profiles.Upsert(ctx, &domain.UserProfile{
		UserID:          userID,
		DisplayName:     remote.DisplayName,
		SpotifyUserID:   remote.ID,
		ProfileImageURL: imageURL,
		Country:         remote.Country,
	})
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, p)
	s.log.Info("Spotify profile synced", "user_id", userID)
	return p, nil
}

func (s *service) cacheProfile(ctx context.Context, p *domain.UserProfile) {
	raw, err := json.Marshal(p)
	if err != nil {
		s.log.Warn("failed to marshal profile for cache", "user_id", p.UserID, "err", err)
		return
	}
	s.cache.Set(ctx, profileKey(p.UserID), string(raw), cache.TTLProfile)
}
