package spotify

import (
	"context"
	"log/slog"

	"github.com/go-music-gateway/internal/config"
)

// Provider fetches catalog data from the upstream music provider.
//
// Implementations never return an error to the caller: the live provider
// degrades to deterministic mock data on any upstream failure, trading
// correctness for availability.
type Provider interface {
	GetTrack(ctx context.Context, trackID string) *Track
	GetAlbum(ctx context.Context, albumID string) *Album
	GetArtist(ctx context.Context, artistID string) *Artist
	GetUserProfile(ctx context.Context, accessToken string) *UserProfile
	Search(ctx context.Context, query, types string, limit int) *SearchResults
}

// NewProvider selects the provider implementation once at construction:
// mock mode when no usable credentials are configured, live mode otherwise.
func NewProvider(cfg *config.Config, log *slog.Logger) Provider {
	if cfg.SpotifyClientID == "" ||
		cfg.SpotifyClientID == "your_spotify_client_id_here" ||
		cfg.SpotifyClientID == "mock" {
		log.Warn("no Spotify credentials configured, using mock catalog data")
		return NewMock()
	}
	return NewLive(cfg.SpotifyClientID, cfg.SpotifyClientSecret, log)
}
