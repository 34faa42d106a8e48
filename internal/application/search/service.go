package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
)

const (
	defaultTypes = "track,artist,album"
	defaultLimit = 20
	historySize  = 50
)

// HistoryStore is the analytics sink for executed searches.
type HistoryStore interface {
	Put(ctx context.Context, h *domain.SearchHistory) error
	ListByUser(ctx context.Context, userID int64, limit int32) ([]domain.SearchHistory, error)
}

type Service interface {
	Search(ctx context.Context, userID int64, query, types string, limit int) (*spotify.SearchResults, error)
	History(ctx context.Context, userID int64) ([]domain.SearchHistory, error)
}

type service struct {
	cache    cache.Store
	upstream spotify.Provider
	history  HistoryStore
	log      *slog.Logger
}

func NewService(c cache.Store, upstream spotify.Provider, history HistoryStore, log *slog.Logger) Service {
	return &service{cache: c, upstream: upstream, history: history, log: log}
}

// Search serves from cache when possible and records an analytics entry for
// every search that reached the upstream. The history write is best-effort:
// analytics must never fail the caller's request.
func (s *service) Search(ctx context.Context, userID int64, query, types string, limit int) (*spotify.SearchResults, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", domain.ErrBadRequest)
	}
	if types == "" {
		types = defaultTypes
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	key := fmt.Sprintf("search:%s:%s:%d", query, types, limit)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var results spotify.SearchResults
		if err := json.Unmarshal([]byte(raw), &results); err == nil {
			s.log.Info("search cache hit", "query", query)
			return &results, nil
		}
		s.log.Warn("discarding undecodable cache entry", "key", key)
	}

	results := s.upstream.Search(ctx, query, types, limit)

	if raw, err := json.Marshal(results); err == nil {
		s.cache.Set(ctx, key, string(raw), cache.TTLSearch)
	}

	entry := &domain.SearchHistory{
		UserID:       userID,
		Query:        query,
		SearchType:   types,
		ResultsCount: len(results.Tracks.Items),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.history.Put(ctx, entry); err != nil {
		s.log.Warn("failed to record search history", "user_id", userID, "err", err)
	}

	s.log.Info("search completed", "query", query, "user_id", userID)
	return results, nil
}

func (s *service) History(ctx context.Context, userID int64) ([]domain.SearchHistory, error) {
	return s.history.ListByUser(ctx, userID, historySize)
}
