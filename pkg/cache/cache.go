// Package cache provides the content-addressed store for fetched map
// geometry. Keys are a pure function of the request (layer, location,
// radius, tag set), so concurrent duplicate writes are harmless.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long fetched geometry stays valid. Street networks
// change slowly; a year keeps repeat renders offline-friendly.
const DefaultTTL = 365 * 24 * time.Hour

// Cache is the storage interface. Get reports a miss with found=false
// rather than an error; a miss is the normal path, not a failure.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
