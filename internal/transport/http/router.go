package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-music-gateway/internal/application/auth"
	"github.com/go-music-gateway/internal/application/music"
	"github.com/go-music-gateway/internal/application/search"
	"github.com/go-music-gateway/internal/application/streaming"
	"github.com/go-music-gateway/internal/application/user"
	"github.com/go-music-gateway/internal/config"
	"github.com/go-music-gateway/internal/transport/http/handler"
	appmiddleware "github.com/go-music-gateway/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// A missing token provider is a wiring bug, not a degraded mode: a
	// pass-through here would leave every authenticated route open.
	if deps.TokenProvider == nil {
		panic("http: router requires a token provider")
	}
	authMw := appmiddleware.Auth(deps.TokenProvider)

	// 5 requests/second, burst of 10 — applied to credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(deps.UserRepo, deps.TokenProvider, deps.Logger)
	musicSvc := music.NewService(deps.Cache, deps.TrackRepo, deps.PlaylistRepo, deps.Upstream, deps.Logger)
	userSvc := user.NewService(deps.Cache, deps.ProfileRepo, deps.Upstream, deps.Logger)
	searchSvc := search.NewService(deps.Cache, deps.Upstream, deps.HistoryRepo, deps.Logger)
	streamSvc := streaming.NewService(deps.Cache, musicSvc, deps.Logger)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	musicH := handler.NewMusicHandler(musicSvc)
	userH := handler.NewUserHandler(userSvc)
	searchH := handler.NewSearchHandler(searchSvc)
	streamH := handler.NewStreamingHandler(streamSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health", healthH.Check)
	r.Handle("/metrics", promhttp.Handler())
	r.With(sensitiveRL.Limit).Post("/api/auth/register", authH.Register)
	r.With(sensitiveRL.Limit).Post("/api/auth/login", authH.Login)
	r.Post("/api/auth/verify", authH.Verify)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/api/music/tracks/{spotifyID}", musicH.GetTrack)
		r.Post("/api/music/playlists", musicH.CreatePlaylist)
		r.Get("/api/music/playlists", musicH.ListPlaylists)
		r.Post("/api/music/playlists/{playlistID}/tracks", musicH.AddPlaylistTrack)
		r.Get("/api/music/playlists/{playlistID}/tracks", musicH.ListPlaylistTracks)
		r.Delete("/api/music/playlists/{playlistID}", musicH.DeletePlaylist)

		r.Get("/api/users/profile", userH.GetProfile)
		r.Post("/api/users/profile", userH.UpsertProfile)
		r.Put("/api/users/profile", userH.UpsertProfile)
		r.Post("/api/users/sync-spotify", userH.SyncSpotify)

		r.Get("/api/search", searchH.Search)
		r.Get("/api/search/history", searchH.History)

		r.Get("/api/streaming/play/{trackID}", streamH.Play)
		r.Post("/api/streaming/playback", streamH.RecordPlayback)
		r.Get("/api/streaming/now-playing", streamH.NowPlaying)
	})

	return r
}
