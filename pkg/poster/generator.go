// Package poster orchestrates one full render: theme resolution, layer
// visibility, geometry fetch, projection, and the render engine, plus
// file output.
package poster

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/fetch"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/layers"
	"github.com/citymaps/cityposter/pkg/render"
	"github.com/citymaps/cityposter/pkg/render/sink"
	"github.com/citymaps/cityposter/pkg/text"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Water and park layers draw in every mode, independent of the zoom
// visibility bands.
var baseFilters = map[string]layers.TagFilter{
	"water": {"natural": {"water"}, "waterway": {"riverbank"}},
	"parks": {"leisure": {"park"}, "landuse": {"grass"}},
}

// Generator drives the fetch-project-render pipeline. It holds the
// theme store and font bundle for its lifetime; one generator serves
// sequential renders.
type Generator struct {
	fetcher *fetch.Fetcher
	themes  *theme.Store
	engine  *render.Engine
	fonts   text.FontSet
	logger  *log.Logger
}

// NewGenerator creates a generator. A nil logger discards diagnostics.
func NewGenerator(fetcher *fetch.Fetcher, themes *theme.Store, fonts text.FontSet, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Generator{
		fetcher: fetcher,
		themes:  themes,
		engine:  render.NewEngine(logger),
		fonts:   fonts,
		logger:  logger,
	}
}

// Generate renders one poster. A failed street-network fetch aborts
// the render; every optional layer degrades to "skipped" on failure.
func (g *Generator) Generate(ctx context.Context, cfg RenderConfig) (*render.Figure, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	th := g.themes.Load(cfg.Theme)
	if len(cfg.CustomColors) > 0 {
		overrides := make(map[string]any, len(cfg.CustomColors))
		for k, v := range cfg.CustomColors {
			overrides[k] = v
		}
		th = theme.Merge(th, overrides)
	}

	visibility := layers.Defaults(cfg.Distance).Merge(cfg.Layers)
	center := geom.LatLon{Lat: cfg.Lat, Lon: cfg.Lon}

	g.logger.Infof("Generating poster: %s (%.4f, %.4f) r=%.0fm theme=%s",
		cfg.City, cfg.Lat, cfg.Lon, cfg.Distance, th.Name)

	graph, err := g.fetcher.FetchGraph(ctx, center, cfg.Distance)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStreetNetwork, err, "fetching street network")
	}

	proj := geom.NewProjection(center)
	bundle := &geom.Bundle{
		Graph:  proj.ProjectGraph(graph),
		Layers: make(map[string]*geom.Collection),
	}

	for name, filter := range baseFilters {
		g.fetchLayer(ctx, bundle, proj, name, center, cfg.Distance, filter)
	}
	for _, name := range layers.Names {
		if !visibility.Enabled(name) {
			continue
		}
		g.fetchLayer(ctx, bundle, proj, name, center, cfg.Distance, layers.Tags[name])
	}

	fig, err := g.engine.Render(render.Request{
		Theme:    th,
		Bundle:   bundle,
		Paper:    cfg.Paper,
		DPI:      cfg.DPI,
		Distance: cfg.Distance,
		Overlay: text.Overlay{
			City:          cfg.City,
			Country:       cfg.Country,
			Lat:           cfg.Lat,
			Lon:           cfg.Lon,
			CustomCity:    cfg.CustomCity,
			CustomCountry: cfg.CustomCountry,
			Subtitle:      cfg.Subtitle,
			CustomCoords:  cfg.CustomCoords,
			CoordsFormat:  cfg.CoordsFormat,
			Color:         cfg.TextColor,
			Position:      cfg.Position,
		},
	})
	if err != nil {
		return nil, err
	}
	fig.Fonts = g.fonts
	return fig, nil
}

// fetchLayer retrieves and projects one optional layer into the
// bundle. Failures and empty results are skipped, never fatal.
func (g *Generator) fetchLayer(ctx context.Context, bundle *geom.Bundle, proj geom.Projection,
	name string, center geom.LatLon, distance float64, filter layers.TagFilter) {

	c, err := g.fetcher.FetchFeatures(ctx, name, center, distance, filter)
	if err != nil {
		g.logger.Warnf("Skipping %s layer: %v", name, err)
		return
	}
	if c.Empty() {
		g.logger.Debugf("Layer %s is empty here", name)
		return
	}
	bundle.Layers[name] = proj.ProjectCollection(c)
}

// Save materializes the figure into path, choosing the format from the
// extension (.png, .svg, or .pdf). The file appears atomically: output
// is written to a unique temp file and renamed, so a failed render
// never leaves a partial poster behind.
func (g *Generator) Save(fig *render.Figure, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		data, err = sink.RenderPNG(fig)
	case ".svg":
		data = sink.RenderSVG(fig)
	case ".pdf":
		data, err = sink.RenderPDF(fig)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported output format %q (use png, svg, or pdf)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "renaming %s", tmp)
	}

	g.logger.Infof("Saved poster: %s", path)
	return nil
}

// Filename builds the output file name for a render:
// {city_slug}_{theme}_{timestamp}.{ext}. Second-resolution timestamps
// keep rapid successive renders from colliding.
func Filename(city, themeName, format string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "_")
	if slug == "" {
		slug = "poster"
	}
	return fmt.Sprintf("%s_%s_%s.%s", slug, themeName, time.Now().Format("20060102_150405"), strings.ToLower(format))
}
