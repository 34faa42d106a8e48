package handler

import (
	"net/http"
	"strconv"

	"github.com/go-music-gateway/internal/application/search"
	"github.com/go-music-gateway/internal/transport/http/middleware"
)

// SearchHandler handles catalog search and search history.
type SearchHandler struct {
	svc search.Service
}

func NewSearchHandler(svc search.Service) *SearchHandler { return &SearchHandler{svc: svc} }

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	q := r.URL.Query().Get("q")
	types := r.URL.Query().Get("type")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.svc.Search(r.Context(), claims.UserID, q, types, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *SearchHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	history, err := h.svc.History(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
