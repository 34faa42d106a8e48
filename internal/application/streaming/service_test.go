package streaming

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTrackLookup struct{ mock.Mock }

func (m *mockTrackLookup) GetTrack(ctx context.Context, spotifyID string) (*domain.Track, error) {
	args := m.Called(ctx, spotifyID)
	if t, _ := args.Get(0).(*domain.Track); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func newSvc(tl TrackLookup) (Service, cache.Store) {
	c := cache.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(c, tl, log), c
}

func TestPlay_BuildsStreamInfoAndCaches(t *testing.T) {
	tl := new(mockTrackLookup)
	svc, c := newSvc(tl)
	ctx := context.Background()

	tl.On("GetTrack", ctx, "sp-1").Return(&domain.Track{
		SpotifyTrackID: "sp-1", Name: "Song", Artist: "Artist",
		PreviewURL: "https://cdn.example.com/p.mp3", DurationMS: 180000,
	}, nil).Once()

	info, err := svc.Play(ctx, "sp-1")
	require.NoError(t, err)
	assert.Equal(t, "sp-1", info.TrackID)
	assert.Equal(t, "https://cdn.example.com/p.mp3", info.PreviewURL)

	_, ok := c.Get(ctx, "stream:sp-1")
	assert.True(t, ok)

	// Second play is served from cache.
	again, err := svc.Play(ctx, "sp-1")
	require.NoError(t, err)
	assert.Equal(t, info.Name, again.Name)
	tl.AssertExpectations(t)
}

func TestPlay_FallbackPreviewURL(t *testing.T) {
	tl := new(mockTrackLookup)
	svc, _ := newSvc(tl)
	ctx := context.Background()

	tl.On("GetTrack", ctx, "sp-2").Return(&domain.Track{SpotifyTrackID: "sp-2", Name: "Song"}, nil)

	info, err := svc.Play(ctx, "sp-2")
	require.NoError(t, err)
	assert.Equal(t, fallbackStreamURL, info.PreviewURL)
}

func TestNowPlaying_EmptyByDefault(t *testing.T) {
	tl := new(mockTrackLookup)
	svc, _ := newSvc(tl)

	np, err := svc.NowPlaying(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, np.Playing)
	assert.Nil(t, np.Track)
}

func TestRecordPlayback_PlaySetsNowPlaying(t *testing.T) {
	tl := new(mockTrackLookup)
	svc, _ := newSvc(tl)
	ctx := context.Background()

	tl.On("GetTrack", ctx, "sp-1").Return(&domain.Track{
		SpotifyTrackID: "sp-1", Name: "Song", PreviewURL: "p",
	}, nil)

	err := svc.RecordPlayback(ctx, 42, domain.PlaybackEventRequest{TrackID: "sp-1", EventType: "play"})
	require.NoError(t, err)

	np, err := svc.NowPlaying(ctx, 42)
	require.NoError(t, err)
	require.True(t, np.Playing)
	assert.Equal(t, "Song", np.Track.Name)

	// Another user's state is untouched.
	other, err := svc.NowPlaying(ctx, 43)
	require.NoError(t, err)
	assert.False(t, other.Playing)
}

func TestRecordPlayback_PauseDoesNotTouchState(t *testing.T) {
	tl := new(mockTrackLookup)
	svc, _ := newSvc(tl)
	ctx := context.Background()

	err := svc.RecordPlayback(ctx, 42, domain.PlaybackEventRequest{TrackID: "sp-1", EventType: "pause"})
	require.NoError(t, err)

	np, err := svc.NowPlaying(ctx, 42)
	require.NoError(t, err)
	assert.False(t, np.Playing)
	tl.AssertNotCalled(t, "GetTrack", mock.Anything, mock.Anything)
}
