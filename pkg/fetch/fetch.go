// Package fetch retrieves street networks and feature layers from
// OpenStreetMap, with a content-addressed cache in front of the
// upstream source and polite throttling behind it.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/citymaps/cityposter/pkg/cache"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/layers"
)

// Source produces raw geometry for a point and radius. A nil result
// with a nil error means the layer has no data there; callers skip it.
type Source interface {
	FetchGraph(ctx context.Context, center geom.LatLon, distance float64) (*geom.Graph, error)
	FetchFeatures(ctx context.Context, center geom.LatLon, distance float64, filter layers.TagFilter) (*geom.Collection, error)
}

// Post-fetch delays keep request rates friendly to the public
// Overpass instances.
const (
	graphThrottle   = 500 * time.Millisecond
	featureThrottle = 300 * time.Millisecond
)

// Fetcher wraps a Source with the geometry cache. Cache hits skip the
// network and the throttle entirely.
type Fetcher struct {
	source Source
	cache  cache.Cache
	keyer  *cache.Keyer
	logger *log.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSleep replaces the post-fetch delay function. Tests pass a no-op
// to skip the cooperative throttle.
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *Fetcher) { f.sleep = sleep }
}

// NewFetcher creates a caching fetcher. A nil cache disables caching,
// a nil keyer uses unprefixed keys, and a nil logger discards
// diagnostics.
func NewFetcher(source Source, c cache.Cache, keyer *cache.Keyer, logger *log.Logger, opts ...Option) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewKeyer("")
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	f := &Fetcher{source: source, cache: c, keyer: keyer, logger: logger, sleep: time.Sleep}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchGraph returns the street network around center. The result is
// cached; a fresh fetch is followed by a short delay.
func (f *Fetcher) FetchGraph(ctx context.Context, center geom.LatLon, distance float64) (*geom.Graph, error) {
	key := f.keyer.GraphKey(center.Lat, center.Lon, distance)

	if data, found, err := f.cache.Get(ctx, key); err == nil && found {
		var g geom.Graph
		if err := json.Unmarshal(data, &g); err == nil {
			f.logger.Debugf("Graph cache hit: %s", key)
			return &g, nil
		}
		_ = f.cache.Delete(ctx, key)
	}

	f.logger.Debugf("Fetching street network: %.4f, %.4f r=%.0fm", center.Lat, center.Lon, distance)
	g, err := f.source.FetchGraph(ctx, center, distance)
	if err != nil {
		return nil, err
	}
	f.sleep(graphThrottle)

	if g != nil {
		if data, err := json.Marshal(g); err == nil {
			if err := f.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				f.logger.Warnf("Failed to cache graph: %v", err)
			}
		}
	}
	return g, nil
}

// FetchFeatures returns one feature layer around center. A nil
// collection means the layer is unavailable and should be skipped.
func (f *Fetcher) FetchFeatures(ctx context.Context, layer string, center geom.LatLon, distance float64, filter layers.TagFilter) (*geom.Collection, error) {
	key := f.keyer.FeatureKey(layer, center.Lat, center.Lon, distance, filter.Keys())

	if data, found, err := f.cache.Get(ctx, key); err == nil && found {
		var c geom.Collection
		if err := json.Unmarshal(data, &c); err == nil {
			f.logger.Debugf("Feature cache hit: %s", key)
			return &c, nil
		}
		_ = f.cache.Delete(ctx, key)
	}

	f.logger.Debugf("Fetching %s layer: %.4f, %.4f r=%.0fm", layer, center.Lat, center.Lon, distance)
	c, err := f.source.FetchFeatures(ctx, center, distance, filter)
	if err != nil {
		return nil, err
	}
	f.sleep(featureThrottle)

	if c != nil {
		if data, err := json.Marshal(c); err == nil {
			if err := f.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				f.logger.Warnf("Failed to cache %s layer: %v", layer, err)
			}
		}
	}
	return c, nil
}
