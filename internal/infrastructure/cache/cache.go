package cache

import (
	"context"
	"time"
)

// Store is a best-effort TTL cache in front of the source of truth.
//
// Get reports a miss on any backing-store failure: callers cannot distinguish
// "absent" from "cache unavailable", and must fall through to the repository
// either way. Set never propagates failures. Losing every entry costs latency,
// never data.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// TTLs per call site. Derived and expensive lookups are cached longer than
// volatile, session-scoped ones.
const (
	TTLStream  = 300 * time.Second
	TTLSearch  = 1800 * time.Second
	TTLTrack   = 3600 * time.Second
	TTLProfile = 3600 * time.Second
)
