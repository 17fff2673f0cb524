package poster

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/fetch"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/layers"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/text"
	"github.com/citymaps/cityposter/pkg/theme"
)

// fakeSource serves a small street grid around whatever center it is
// asked for, recording the requests it sees.
type fakeSource struct {
	graphCalls    int
	featureCalls  []string
	lastDistance  float64
	graphErr      error
	featureErr    error
	emptyFeatures bool
}

func (s *fakeSource) FetchGraph(_ context.Context, center geom.LatLon, distance float64) (*geom.Graph, error) {
	s.graphCalls++
	s.lastDistance = distance
	if s.graphErr != nil {
		return nil, s.graphErr
	}

	// Node coordinates are (lon, lat) degrees, as a real source
	// returns them.
	d := 0.005
	g := geom.NewGraph()
	g.AddNode(geom.Node{ID: 1, X: center.Lon - d, Y: center.Lat - d})
	g.AddNode(geom.Node{ID: 2, X: center.Lon + d, Y: center.Lat - d})
	g.AddNode(geom.Node{ID: 3, X: center.Lon + d, Y: center.Lat + d})
	g.AddEdge(geom.Edge{From: 1, To: 2, Highway: "primary"})
	g.AddEdge(geom.Edge{From: 2, To: 3, Highway: "residential"})
	return g, nil
}

func (s *fakeSource) FetchFeatures(_ context.Context, center geom.LatLon, _ float64, filter layers.TagFilter) (*geom.Collection, error) {
	s.featureCalls = append(s.featureCalls, strings.Join(filter.Keys(), ","))
	if s.featureErr != nil {
		return nil, s.featureErr
	}
	if s.emptyFeatures {
		return nil, nil
	}
	d := 0.001
	return &geom.Collection{Features: []geom.Feature{{
		Type: geom.TypePolygon,
		Polygon: geom.Polygon{Exterior: geom.Line{
			{X: center.Lon, Y: center.Lat}, {X: center.Lon + d, Y: center.Lat},
			{X: center.Lon + d, Y: center.Lat + d}, {X: center.Lon, Y: center.Lat},
		}},
		Tags: map[string]string{"building": "yes"},
	}}}, nil
}

func newTestGenerator(t *testing.T, source *fakeSource) *Generator {
	t.Helper()
	fetcher := fetch.NewFetcher(source, nil, nil, nil, fetch.WithSleep(func(time.Duration) {}))
	store := theme.NewStore(t.TempDir(), nil)
	return NewGenerator(fetcher, store, text.FontSet{}, nil)
}

func baseConfig() RenderConfig {
	return RenderConfig{
		Lat: 52.52, Lon: 13.405,
		City: "Berlin", Country: "Germany",
		Distance: 4000,
		Paper:    paper.A3,
		DPI:      PreviewDPI,
	}
}

func TestGenerate(t *testing.T) {
	source := &fakeSource{}
	gen := newTestGenerator(t, source)

	fig, err := gen.Generate(context.Background(), baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if fig == nil {
		t.Fatal("no figure returned")
	}
	if source.graphCalls != 1 {
		t.Errorf("graph fetched %d times, want 1", source.graphCalls)
	}

	// 4000m sits in the middle band: base water/parks plus buildings,
	// waterways, railways, leisure, amenities.
	if len(source.featureCalls) != 7 {
		t.Errorf("feature layers fetched = %d, want 7: %v", len(source.featureCalls), source.featureCalls)
	}
}

func TestGenerateStreetNetworkFailureIsFatal(t *testing.T) {
	source := &fakeSource{graphErr: errors.New(errors.ErrCodeNetwork, "overpass down")}
	gen := newTestGenerator(t, source)

	_, err := gen.Generate(context.Background(), baseConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeStreetNetwork) {
		t.Errorf("code = %s, want STREET_NETWORK", errors.GetCode(err))
	}
}

func TestGenerateLayerFailureDegrades(t *testing.T) {
	source := &fakeSource{featureErr: errors.New(errors.ErrCodeNetwork, "layer fetch failed")}
	gen := newTestGenerator(t, source)

	if _, err := gen.Generate(context.Background(), baseConfig()); err != nil {
		t.Fatalf("optional layer failure should not abort: %v", err)
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RenderConfig)
		code   errors.Code
	}{
		{"distance exceeded", func(c *RenderConfig) { c.Distance = 60000 }, errors.ErrCodeDistanceExceeded},
		{"negative distance", func(c *RenderConfig) { c.Distance = -1 }, errors.ErrCodeInvalidDistance},
		{"latitude out of range", func(c *RenderConfig) { c.Lat = 91 }, errors.ErrCodeInvalidCoords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{}
			gen := newTestGenerator(t, source)

			cfg := baseConfig()
			tt.mutate(&cfg)

			_, err := gen.Generate(context.Background(), cfg)
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
			if source.graphCalls != 0 {
				t.Error("validation failure must not reach the network")
			}
		})
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	source := &fakeSource{emptyFeatures: true}
	gen := newTestGenerator(t, source)

	cfg := baseConfig()
	cfg.Distance = 0
	cfg.Paper = ""
	cfg.DPI = 0

	fig, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if source.lastDistance != DefaultDistance {
		t.Errorf("distance = %.0f, want %.0f", source.lastDistance, DefaultDistance)
	}
	if fig.Paper != paper.Default {
		t.Errorf("paper = %s, want %s", fig.Paper, paper.Default)
	}
	if fig.DPI != DefaultDPI {
		t.Errorf("dpi = %d, want %d", fig.DPI, DefaultDPI)
	}
}

func TestGenerateCustomColors(t *testing.T) {
	source := &fakeSource{emptyFeatures: true}
	gen := newTestGenerator(t, source)

	cfg := baseConfig()
	cfg.CustomColors = map[string]string{"bg": "#123456"}

	fig, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := fig.Background.Hex(); got != "#123456" {
		t.Errorf("background = %s, want #123456", got)
	}
}

func TestSave(t *testing.T) {
	source := &fakeSource{emptyFeatures: true}
	gen := newTestGenerator(t, source)

	fig, err := gen.Generate(context.Background(), baseConfig())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("svg", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.svg")
		if err := gen.Save(fig, path); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "<svg ") {
			t.Error("saved file is not an SVG")
		}
	})

	t.Run("no stray temp files", func(t *testing.T) {
		dir := t.TempDir()
		if err := gen.Save(fig, filepath.Join(dir, "out.svg")); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want only the poster", len(entries))
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := gen.Save(fig, filepath.Join(t.TempDir(), "out.bmp"))
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("code = %s, want INVALID_FORMAT", errors.GetCode(err))
		}
	})
}

func TestFilename(t *testing.T) {
	got := Filename("New York", "noir_lights", "PNG")
	pattern := regexp.MustCompile(`^new_york_noir_lights_\d{8}_\d{6}\.png$`)
	if !pattern.MatchString(got) {
		t.Errorf("filename %q does not match %s", got, pattern)
	}
}
