package user

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

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if p, _ := args.Get(0).(*domain.UserProfile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileStore) Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, p)
	if stored, _ := args.Get(0).(*domain.UserProfile); stored != nil {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func newSvc(ps ProfileStore) (Service, cache.Store) {
	c := cache.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(c, ps, spotify.NewMock(), log), c
}

func TestGetProfile_MissThenCached(t *testing.T) {
	ps := new(mockProfileStore)
	svc, c := newSvc(ps)
	ctx := context.Background()

	ps.On("GetByUserID", ctx, int64(7)).
		Return(&domain.UserProfile{ID: 1, UserID: 7, DisplayName: "Alice"}, nil).Once()

	p, err := svc.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)

	_, ok := c.Get(ctx, "profile:7")
	assert.True(t, ok)

	// Second read is served from cache; the store mock would panic on a second call.
	again, err := svc.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.DisplayName)
	ps.AssertExpectations(t)
}

func TestGetProfile_NotFound(t *testing.T) {
	ps := new(mockProfileStore)
	svc, _ := newSvc(ps)
	ctx := context.Background()

	ps.On("GetByUserID", ctx, int64(7)).Return(nil, domain.ErrNotFound)

	_, err := svc.GetProfile(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertProfile_RefreshesCache(t *testing.T) {
	ps := new(mockProfileStore)
	svc, c := newSvc(ps)
	ctx := context.Background()

	ps.On("Upsert", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.UserID == 7 && p.DisplayName == "Alice B"
	})).Return(&domain.UserProfile{ID: 1, UserID: 7, DisplayName: "Alice B"}, nil)

	_, err := svc.UpsertProfile(ctx, 7, domain.UpsertProfileRequest{DisplayName: "Alice B"})
	require.NoError(t, err)

	raw, ok := c.Get(ctx, "profile:7")
	require.True(t, ok)
	assert.Contains(t, raw, "Alice B")
}

func TestSyncSpotify_UsesMockProfileWithoutRealToken(t *testing.T) {
	ps := new(mockProfileStore)
	svc, _ := newSvc(ps)
	ctx := context.Background()

	ps.On("Upsert", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.SpotifyUserID == "mock-user-123" && p.DisplayName == "Mock User" && p.Country == "US"
	})).Return(&domain.UserProfile{ID: 1, UserID: 7, SpotifyUserID: "mock-user-123"}, nil)

	p, err := svc.SyncSpotify(ctx, 7, "mock-token")
	require.NoError(t, err)
	assert.Equal(t, "mock-user-123", p.SpotifyUserID)
	ps.AssertExpectations(t)
}
