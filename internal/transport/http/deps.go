package http

import (
	"log/slog"

	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/dynamo"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
	"github.com/go-music-gateway/internal/infrastructure/sqlite"
	"github.com/go-music-gateway/internal/infrastructure/token"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     *sqlite.UserRepo
	TrackRepo    *sqlite.TrackRepo
	PlaylistRepo *sqlite.PlaylistRepo
	ProfileRepo  *sqlite.ProfileRepo
	HistoryRepo  *dynamo.SearchHistoryRepo

	Cache         cache.Store
	Upstream      spotify.Provider
	TokenProvider *token.Provider
	Logger        *slog.Logger
}
