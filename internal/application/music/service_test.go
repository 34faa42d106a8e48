package music

import (
	"context"
	"encoding/json"
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

// --- mocks ---

type mockTrackStore struct{ mock.Mock }

func (m *mockTrackStore) GetBySpotifyID(ctx context.Context, spotifyID string) (*domain.Track, error) {
	args := m.Called(ctx, spotifyID)
	if t, _ := args.Get(0).(*domain.Track); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTrackStore) Upsert(ctx context.Context, t *domain.Track) (*domain.Track, error) {
	args := m.Called(ctx, t)
	if stored, _ := args.Get(0).(*domain.Track); stored != nil {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlaylistStore struct{ mock.Mock }

func (m *mockPlaylistStore) Create(ctx context.Context, userID int64, name, description string) (*domain.Playlist, error) {
	args := m.Called(ctx, userID, name, description)
	if p, _ := args.Get(0).(*domain.Playlist); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlaylistStore) ListByUser(ctx context.Context, userID int64) ([]domain.Playlist, error) {
	args := m.Called(ctx, userID)
	if p, _ := args.Get(0).([]domain.Playlist); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlaylistStore) GetOwned(ctx context.Context, playlistID, userID int64) (*domain.Playlist, error) {
	args := m.Called(ctx, playlistID, userID)
	if p, _ := args.Get(0).(*domain.Playlist); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlaylistStore) AddTrack(ctx context.Context, playlistID, trackID int64) error {
	return m.Called(ctx, playlistID, trackID).Error(0)
}
func (m *mockPlaylistStore) ListTracks(ctx context.Context, playlistID int64) ([]domain.Track, error) {
	args := m.Called(ctx, playlistID)
	if t, _ := args.Get(0).([]domain.Track); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlaylistStore) Delete(ctx context.Context, playlistID int64) error {
	return m.Called(ctx, playlistID).Error(0)
}

// --- helpers ---

func newSvc(ts TrackStore, ps PlaylistStore) (Service, cache.Store) {
	c := cache.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(c, ts, ps, spotify.NewMock(), log), c
}

// --- tests ---

func TestGetTrack_CacheHitSkipsRepository(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, c := newSvc(ts, ps)
	ctx := context.Background()

	cached, _ := json.Marshal(domain.Track{ID: 9, SpotifyTrackID: "sp-1", Name: "Cached Song"})
	c.Set(ctx, "track:sp-1", string(cached), cache.TTLTrack)

	got, err := svc.GetTrack(ctx, "sp-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Song", got.Name)
	ts.AssertNotCalled(t, "GetBySpotifyID", mock.Anything, mock.Anything)
}

func TestGetTrack_RepoHitPopulatesCache(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, c := newSvc(ts, ps)
	ctx := context.Background()

	ts.On("GetBySpotifyID", ctx, "sp-1").
		Return(&domain.Track{ID: 3, SpotifyTrackID: "sp-1", Name: "Stored Song"}, nil)

	got, err := svc.GetTrack(ctx, "sp-1")
	require.NoError(t, err)
	assert.Equal(t, "Stored Song", got.Name)

	raw, ok := c.Get(ctx, "track:sp-1")
	require.True(t, ok, "repository hit must be written back to the cache")
	var cached domain.Track
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, int64(3), cached.ID)
	ts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetTrack_RepoMissFetchesUpstreamAndPersists(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, c := newSvc(ts, ps)
	ctx := context.Background()

	ts.On("GetBySpotifyID", ctx, "4iV5W9uYEdYUVa79Axb7Rh").Return(nil, domain.ErrNotFound)
	ts.On("Upsert", ctx, mock.MatchedBy(func(tr *domain.Track) bool {
		return tr.SpotifyTrackID == "4iV5W9uYEdYUVa79Axb7Rh" && tr.Name == "Mock Track 4iV5W9uY"
	})).Return(&domain.Track{ID: 1, SpotifyTrackID: "4iV5W9uYEdYUVa79Axb7Rh", Name: "Mock Track 4iV5W9uY"}, nil)

	got, err := svc.GetTrack(ctx, "4iV5W9uYEdYUVa79Axb7Rh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, ok := c.Get(ctx, "track:4iV5W9uYEdYUVa79Axb7Rh")
	assert.True(t, ok, "fetched track must be written back to the cache")
	ts.AssertExpectations(t)
}

func TestGetTrack_PersistFailureLeavesCacheEmpty(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, c := newSvc(ts, ps)
	ctx := context.Background()

	ts.On("GetBySpotifyID", ctx, "sp-1").Return(nil, domain.ErrNotFound)
	ts.On("Upsert", ctx, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.GetTrack(ctx, "sp-1")
	require.Error(t, err)

	_, ok := c.Get(ctx, "track:sp-1")
	assert.False(t, ok, "cache must never hold a value absent from the repository")
}

func TestAddPlaylistTrack_NotOwned(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, _ := newSvc(ts, ps)
	ctx := context.Background()

	ps.On("GetOwned", ctx, int64(5), int64(43)).Return(nil, domain.ErrNotFound)

	err := svc.AddPlaylistTrack(ctx, 43, 5, "sp-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	ts.AssertNotCalled(t, "GetBySpotifyID", mock.Anything, mock.Anything,
		"ownership must be checked before any track lookup")
}

func TestAddPlaylistTrack_FetchesUnknownTrack(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, _ := newSvc(ts, ps)
	ctx := context.Background()

	ps.On("GetOwned", ctx, int64(5), int64(42)).Return(&domain.Playlist{ID: 5, UserID: 42}, nil)
	ts.On("GetBySpotifyID", ctx, "sp-new").Return(nil, domain.ErrNotFound)
	ts.On("Upsert", ctx, mock.Anything).Return(&domain.Track{ID: 7, SpotifyTrackID: "sp-new"}, nil)
	ps.On("AddTrack", ctx, int64(5), int64(7)).Return(nil)

	require.NoError(t, svc.AddPlaylistTrack(ctx, 42, 5, "sp-new"))
	ps.AssertExpectations(t)
}

func TestCreateAndListPlaylists(t *testing.T) {
	ts := new(mockTrackStore)
	ps := new(mockPlaylistStore)
	svc, _ := newSvc(ts, ps)
	ctx := context.Background()

	ps.On("Create", ctx, int64(42), "Road Trip", "").
		Return(&domain.Playlist{ID: 1, UserID: 42, Name: "Road Trip"}, nil)
	ps.On("ListByUser", ctx, int64(42)).
		Return([]domain.Playlist{{ID: 1, UserID: 42, Name: "Road Trip"}}, nil)

	p, err := svc.CreatePlaylist(ctx, 42, domain.CreatePlaylistRequest{Name: "Road Trip"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	list, err := svc.ListPlaylists(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Road Trip", list[0].Name)
}
