package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-music-gateway/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultBaseURL  = "https://api.spotify.com/v1"

	// refreshMargin renews the access token slightly before its expiry so
	// in-flight requests don't race the deadline.
	refreshMargin = 30 * time.Second
)

// LiveProvider calls the real Spotify Web API with a shared client-credentials
// access token. The token is refreshed lazily; concurrent callers observing an
// expired token coalesce into a single refresh via singleflight. Any upstream
// failure degrades to the mock payload for the same input.
type LiveProvider struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          *slog.Logger
	fallback     *MockProvider

	tokenURL string
	baseURL  string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	refresh     singleflight.Group
}

func NewLive(clientID, clientSecret string, log *slog.Logger) *LiveProvider {
	return &LiveProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          log,
		fallback:     NewMock(),
		tokenURL:     defaultTokenURL,
		baseURL:      defaultBaseURL,
	}
}

// token returns a valid access token, refreshing it if absent or expired.
// Only one refresh is ever in flight; waiters share its result.
func (p *LiveProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		tok := p.accessToken
		p.mu.Unlock()
		return tok, nil
	}
	p.mu.Unlock()

	v, err, _ := p.refresh.Do("token", func() (interface{}, error) {
		// Re-check: a waiter queued behind a finished refresh must not
		// trigger another one.
		p.mu.Lock()
		if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
			tok := p.accessToken
			p.mu.Unlock()
			return tok, nil
		}
		p.mu.Unlock()
		return p.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *LiveProvider) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.clientID, p.clientSecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	p.mu.Lock()
	p.accessToken = body.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - refreshMargin)
	p.mu.Unlock()
	return body.AccessToken, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (p *LiveProvider) getJSON(ctx context.Context, rawURL, bearer string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// get fetches an API resource with the shared token. A non-nil error means the
// caller should fall back to mock data.
func (p *LiveProvider) get(ctx context.Context, path string, out interface{}) error {
	tok, err := p.token(ctx)
	if err != nil {
		return err
	}
	return p.getJSON(ctx, p.baseURL+path, tok, out)
}

func (p *LiveProvider) GetTrack(ctx context.Context, trackID string) *Track {
	var t Track
	if err := p.get(ctx, "/tracks/"+url.PathEscape(trackID), &t); err != nil {
		p.log.Error("Spotify track fetch failed, using mock data", "track_id", trackID, "err", err)
		return p.fallback.GetTrack(ctx, trackID)
	}
	return &t
}

func (p *LiveProvider) GetAlbum(ctx context.Context, albumID string) *Album {
	var a Album
	if err := p.get(ctx, "/albums/"+url.PathEscape(albumID), &a); err != nil {
		p.log.Error("Spotify album fetch failed, using mock data", "album_id", albumID, "err", err)
		return p.fallback.GetAlbum(ctx, albumID)
	}
	return &a
}

func (p *LiveProvider) GetArtist(ctx context.Context, artistID string) *Artist {
	var a Artist
	if err := p.get(ctx, "/artists/"+url.PathEscape(artistID), &a); err != nil {
		p.log.Error("Spotify artist fetch failed, using mock data", "artist_id", artistID, "err", err)
		return p.fallback.GetArtist(ctx, artistID)
	}
	return &a
}

// GetUserProfile uses the caller-supplied user access token, not the shared
// client-credentials token.
func (p *LiveProvider) GetUserProfile(ctx context.Context, accessToken string) *UserProfile {
	if accessToken == "" || accessToken == "mock-token" {
		return p.fallback.GetUserProfile(ctx, accessToken)
	}
	var u UserProfile
	if err := p.getJSON(ctx, p.baseURL+"/me", accessToken, &u); err != nil {
		p.log.Error("Spotify profile fetch failed, using mock data", "err", err)
		return p.fallback.GetUserProfile(ctx, accessToken)
	}
	return &u
}

func (p *LiveProvider) Search(ctx context.Context, query, types string, limit int) *SearchResults {
	q := url.Values{
		"q":     {query},
		"type":  {types},
		"limit": {strconv.Itoa(limit)},
	}
	var results SearchResults
	if err := p.get(ctx, "/search?"+q.Encode(), &results); err != nil {
		p.log.Error("Spotify search failed, returning empty results", "query", query, "err", err)
		results.Tracks.Items = []Track{}
		results.Artists.Items = []Artist{}
		results.Albums.Items = []Album{}
		return &results
	}
	return &results
}
