package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-music-gateway/internal/application/music"
	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/pkg/validate"
	"github.com/go-music-gateway/internal/transport/http/middleware"
)

// MusicHandler handles track lookups and playlist CRUD.
type MusicHandler struct {
	svc music.Service
}

func NewMusicHandler(svc music.Service) *MusicHandler { return &MusicHandler{svc: svc} }

func (h *MusicHandler) GetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := h.svc.GetTrack(r.Context(), chi.URLParam(r, "spotifyID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (h *MusicHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.CreatePlaylist(r.Context(), claims.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *MusicHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	playlists, err := h.svc.ListPlaylists(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (h *MusicHandler) AddPlaylistTrack(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	playlistID, err := parseID(r, "playlistID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	var req domain.AddPlaylistTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.AddPlaylistTrack(r.Context(), claims.UserID, playlistID, req.SpotifyTrackID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "Track added to playlist"})
}

func (h *MusicHandler) ListPlaylistTracks(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	playlistID, err := parseID(r, "playlistID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	tracks, err := h.svc.ListPlaylistTracks(r.Context(), claims.UserID, playlistID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *MusicHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	playlistID, err := parseID(r, "playlistID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	if err := h.svc.DeletePlaylist(r.Context(), claims.UserID, playlistID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Playlist deleted"})
}

func parseID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
