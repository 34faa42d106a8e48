// Normalized Spotify Web API shapes, based on
// https://developer.spotify.com/documentation/web-api/reference/
package spotify

// Image represents an image resource.
type Image struct {
	URL string `json:"url"`
}

// Artist represents an artist.
type Artist struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Genres []string `json:"genres,omitempty"`
	Images []Image  `json:"images,omitempty"`
}

// Album represents an album.
type Album struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists,omitempty"`
	Images  []Image  `json:"images,omitempty"`
	Tracks  struct {
		Items []Track `json:"items"`
	} `json:"tracks,omitempty"`
}

// Track represents a track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	PreviewURL string   `json:"preview_url"`
}

// UserProfile represents the authenticated user's profile.
type UserProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	Country     string  `json:"country"`
	Images      []Image `json:"images"`
}

// SearchResults groups search hits by entity type, mirroring the provider's
// response envelope.
type SearchResults struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
	Artists struct {
		Items []Artist `json:"items"`
	} `json:"artists"`
	Albums struct {
		Items []Album `json:"items"`
	} `json:"albums"`
}
