package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-music-gateway/internal/application/streaming"
	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/pkg/validate"
	"github.com/go-music-gateway/internal/transport/http/middleware"
)

// StreamingHandler handles stream resolution and playback state.
type StreamingHandler struct {
	svc streaming.Service
}

func NewStreamingHandler(svc streaming.Service) *StreamingHandler {
	return &StreamingHandler{svc: svc}
}

func (h *StreamingHandler) Play(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Play(r.Context(), chi.URLParam(r, "trackID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *StreamingHandler) RecordPlayback(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.PlaybackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RecordPlayback(r.Context(), claims.UserID, req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Playback event recorded"})
}

func (h *StreamingHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	np, err := h.svc.NowPlaying(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, np)
}
