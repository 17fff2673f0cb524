package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/citymaps/cityposter/pkg/cache"
	"github.com/citymaps/cityposter/pkg/fetch"
	"github.com/citymaps/cityposter/pkg/geocode"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/text"
	"github.com/citymaps/cityposter/pkg/theme"
)

// newCache builds the geometry cache: Redis when configured, file
// cache otherwise. Failures degrade to no caching rather than abort.
func newCache(ctx context.Context, cfg Config, noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cfg.RedisAddr, "", 0)
		if err != nil {
			logger.Warnf("Redis cache unavailable (%v), falling back to disk", err)
		} else {
			return c
		}
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warnf("File cache unavailable (%v), caching disabled", err)
		return cache.NewNullCache()
	}
	return c
}

// newGenerator assembles the full pipeline for one command
// invocation.
func newGenerator(ctx context.Context, cfg Config, font string, noCache bool, logger *log.Logger) (*poster.Generator, cache.Cache) {
	c := newCache(ctx, cfg, noCache, logger)

	var sourceOpts []fetch.OverpassOption
	if cfg.OverpassURL != "" {
		sourceOpts = append(sourceOpts, fetch.WithEndpoint(cfg.OverpassURL))
	}
	source := fetch.NewOverpass(sourceOpts...)
	fetcher := fetch.NewFetcher(source, c, cache.NewKeyer(""), logger)

	store := theme.NewStore(cfg.ThemesDir, logger)
	if font == "" {
		font = cfg.DefaultFont
	}
	fonts := text.LoadFonts(cfg.FontsDir, font, logger)

	return poster.NewGenerator(fetcher, store, fonts, logger), c
}

// newGeocoder builds the Nominatim client sharing the geometry cache.
func newGeocoder(cfg Config, c cache.Cache, logger *log.Logger) *geocode.Geocoder {
	var opts []geocode.Option
	if cfg.NominatimURL != "" {
		opts = append(opts, geocode.WithEndpoint(cfg.NominatimURL))
	}
	return geocode.New(c, logger, opts...)
}
