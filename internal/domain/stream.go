package domain

// StreamInfo is the payload returned for a playback request. In production this
// would carry a real streaming URL; for now it exposes the track preview.
type StreamInfo struct {
	TrackID    string `json:"track_id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"preview_url"`
	DurationMS int    `json:"duration_ms"`
	ImageURL   string `json:"image_url"`
}

type PlaybackEventRequest struct {
	TrackID    string `json:"track_id" validate:"required"`
	PositionMS int    `json:"position_ms"`
	EventType  string `json:"event_type" validate:"required"`
}

// NowPlaying reports the caller's current playback state. Playing is false when
// no state is cached.
type NowPlaying struct {
	Playing bool        `json:"playing"`
	Track   *StreamInfo `json:"track,omitempty"`
}
