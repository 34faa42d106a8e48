package spotify

import (
	"context"
	"fmt"
)

const (
	mockImageURL   = "https://via.placeholder.com/300"
	mockProfileURL = "https://via.placeholder.com/150"
	mockPreviewURL = "https://example.com/preview.mp3"
	mockDurationMS = 180000
)

// MockProvider returns deterministic synthetic records derived from the input
// id or query. The same input always yields the same payload.
type MockProvider struct{}

func NewMock() *MockProvider { return &MockProvider{} }

// shortID truncates an external id to its first 8 characters for mock names.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m *MockProvider) GetTrack(_ context.Context, trackID string) *Track {
	return &Track{
		ID:      trackID,
		Name:    fmt.Sprintf("Mock Track %s", shortID(trackID)),
		Artists: []Artist{{Name: "Mock Artist"}},
		Album: Album{
			Name:   "Mock Album",
			Images: []Image{{URL: mockImageURL}},
		},
		DurationMS: mockDurationMS,
		PreviewURL: mockPreviewURL,
	}
}

func (m *MockProvider) GetAlbum(_ context.Context, albumID string) *Album {
	return &Album{
		ID:      albumID,
		Name:    fmt.Sprintf("Mock Album %s", shortID(albumID)),
		Artists: []Artist{{Name: "Mock Artist"}},
		Images:  []Image{{URL: mockImageURL}},
	}
}

func (m *MockProvider) GetArtist(_ context.Context, artistID string) *Artist {
	return &Artist{
		ID:     artistID,
		Name:   fmt.Sprintf("Mock Artist %s", shortID(artistID)),
		Genres: []string{"pop", "rock"},
		Images: []Image{{URL: mockImageURL}},
	}
}

func (m *MockProvider) GetUserProfile(_ context.Context, _ string) *UserProfile {
	return &UserProfile{
		ID:          "mock-user-123",
		DisplayName: "Mock User",
		Email:       "mock@example.com",
		Country:     "US",
		Images:      []Image{{URL: mockProfileURL}},
	}
}

func (m *MockProvider) Search(_ context.Context, query, _ string, _ int) *SearchResults {
	results := &SearchResults{}
	results.Tracks.Items = []Track{{
		ID:      "mock-track-1",
		Name:    fmt.Sprintf("Mock Result for %q", query),
		Artists: []Artist{{Name: "Mock Artist"}},
		Album: Album{
			Name:   "Mock Album",
			Images: []Image{{URL: mockImageURL}},
		},
		DurationMS: mockDurationMS,
	}}
	results.Artists.Items = []Artist{{
		ID:     "mock-artist-1",
		Name:   fmt.Sprintf("Mock Artist for %q", query),
		Genres: []string{"pop"},
		Images: []Image{{URL: mockImageURL}},
	}}
	results.Albums.Items = []Album{{
		ID:      "mock-album-1",
		Name:    fmt.Sprintf("Mock Album for %q", query),
		Artists: []Artist{{Name: "Mock Artist"}},
		Images:  []Image{{URL: mockImageURL}},
	}}
	return results
}
