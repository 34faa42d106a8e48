package search

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHistoryStore struct{ mock.Mock }

func (m *mockHistoryStore) Put(ctx context.Context, h *domain.SearchHistory) error {
	return m.Called(ctx, h).Error(0)
}
func (m *mockHistoryStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]domain.SearchHistory, error) {
	args := m.Called(ctx, userID, limit)
	if h, _ := args.Get(0).([]domain.SearchHistory); h != nil {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func newSvc(hs HistoryStore) (Service, cache.Store) {
	c := cache.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(c, spotify.NewMock(), hs, log), c
}

func TestSearch_MockResultContainsQuery(t *testing.T) {
	hs := new(mockHistoryStore)
	svc, _ := newSvc(hs)
	ctx := context.Background()

	hs.On("Put", ctx, mock.Anything).Return(nil)

	results, err := svc.Search(ctx, 1, "test", "", 0)
	require.NoError(t, err)
	require.NotEmpty(t, results.Tracks.Items)
	assert.Contains(t, results.Tracks.Items[0].Name, "test")
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	hs := new(mockHistoryStore)
	svc, _ := newSvc(hs)

	_, err := svc.Search(context.Background(), 1, "", "", 0)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSearch_CacheHitSkipsUpstreamAndHistory(t *testing.T) {
	hs := new(mockHistoryStore)
	svc, _ := newSvc(hs)
	ctx := context.Background()

	hs.On("Put", ctx, mock.MatchedBy(func(h *domain.SearchHistory) bool {
		return h.UserID == 1 && h.Query == "test" && h.ResultsCount == 1
	})).Return(nil).Once()

	_, err := svc.Search(ctx, 1, "test", "", 0)
	require.NoError(t, err)

	// Served from cache; a second history write would trip the Once() mock.
	results, err := svc.Search(ctx, 1, "test", "", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, results.Tracks.Items)
	hs.AssertExpectations(t)
}

func TestSearch_HistoryFailureDoesNotFailRequest(t *testing.T) {
	hs := new(mockHistoryStore)
	svc, _ := newSvc(hs)
	ctx := context.Background()

	hs.On("Put", ctx, mock.Anything).Return(assert.AnError)

	results, err := svc.Search(ctx, 1, "resilient", "", 0)
	require.NoError(t, err, "analytics failures must be swallowed")
	assert.NotEmpty(t, results.Tracks.Items)
}

func TestHistory_ListsRecentSearches(t *testing.T) {
	hs := new(mockHistoryStore)
	svc, _ := newSvc(hs)
	ctx := context.Background()

	hs.On("ListByUser", ctx, int64(1), int32(50)).
		Return([]domain.SearchHistory{{UserID: 1, Query: "test"}}, nil)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "test", history[0].Query)
}
