// Package geocode resolves place names to coordinates via Nominatim,
// with result caching and the rate limiting its terms of use require.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/citymaps/cityposter/pkg/cache"
	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/httputil"
)

// DefaultNominatimURL is the public Nominatim search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// rateLimit is the minimum spacing between requests, per the
// Nominatim usage policy.
const rateLimit = time.Second

// Result is one resolved place.
type Result struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// Geocoder resolves addresses with caching. Cached lookups skip both
// the network and the rate limit.
type Geocoder struct {
	endpoint string
	client   *http.Client
	cache    cache.Cache
	logger   *log.Logger

	sleep func(time.Duration)
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithEndpoint points the geocoder at a different Nominatim instance.
func WithEndpoint(endpoint string) Option {
	return func(g *Geocoder) { g.endpoint = endpoint }
}

// WithClient sets the HTTP client, mainly for tests.
func WithClient(client *http.Client) Option {
	return func(g *Geocoder) { g.client = client }
}

// New creates a geocoder. A nil cache disables caching and a nil
// logger discards diagnostics.
func New(c cache.Cache, logger *log.Logger, opts ...Option) *Geocoder {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	g := &Geocoder{
		endpoint: DefaultNominatimURL,
		cache:    c,
		logger:   logger,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// nominatimResult is one entry of a Nominatim search response.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves address to coordinates. An address Nominatim does
// not know yields a PLACE_NOT_FOUND error; network failures surface
// as GEOCODE errors so callers can tell the two apart.
func (g *Geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	key := "coords_" + strings.ToLower(address)

	if data, found, err := g.cache.Get(ctx, key); err == nil && found {
		var r Result
		if err := json.Unmarshal(data, &r); err == nil {
			g.logger.Debugf("Geocode cache hit for %q", address)
			return &r, nil
		}
		_ = g.cache.Delete(ctx, key)
	}

	g.logger.Debugf("Looking up %q via Nominatim", address)
	g.sleep(rateLimit)

	query := url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	}

	var results []nominatimResult
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequest(http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return err
		}
		body, err := httputil.Do(ctx, g.client, req)
		if err != nil {
			return err
		}
		results = nil
		return json.Unmarshal(body, &results)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGeocode, err, "geocoding failed for %q", address)
	}

	if len(results) == 0 {
		return nil, errors.New(errors.ErrCodePlaceNotFound, "could not find coordinates for %q", address)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, errors.New(errors.ErrCodeGeocode, "malformed coordinates in geocoding response")
	}

	r := &Result{Lat: lat, Lon: lon, DisplayName: results[0].DisplayName}
	if data, err := json.Marshal(r); err == nil {
		if err := g.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			g.logger.Warnf("Failed to cache geocode result: %v", err)
		}
	}

	g.logger.Infof("Found %s (%.4f, %.4f)", r.DisplayName, r.Lat, r.Lon)
	return r, nil
}
