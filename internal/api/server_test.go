package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/fetch"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/layers"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/text"
	"github.com/citymaps/cityposter/pkg/theme"
)

type fakeSource struct {
	graphErr error
}

func (s *fakeSource) FetchGraph(_ context.Context, center geom.LatLon, _ float64) (*geom.Graph, error) {
	if s.graphErr != nil {
		return nil, s.graphErr
	}
	d := 0.005
	g := geom.NewGraph()
	g.AddNode(geom.Node{ID: 1, X: center.Lon - d, Y: center.Lat - d})
	g.AddNode(geom.Node{ID: 2, X: center.Lon + d, Y: center.Lat + d})
	g.AddEdge(geom.Edge{From: 1, To: 2, Highway: "primary"})
	return g, nil
}

func (s *fakeSource) FetchFeatures(context.Context, geom.LatLon, float64, layers.TagFilter) (*geom.Collection, error) {
	return nil, nil
}

func newTestServer(t *testing.T, source *fakeSource) *Server {
	t.Helper()

	themesDir := t.TempDir()
	data := []byte(`{"name": "Noir Lights", "description": "test theme", "mode": "night_lights"}`)
	if err := os.WriteFile(filepath.Join(themesDir, "noir_lights.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	fetcher := fetch.NewFetcher(source, nil, nil, nil, fetch.WithSleep(func(time.Duration) {}))
	store := theme.NewStore(themesDir, nil)
	gen := poster.NewGenerator(fetcher, store, text.FontSet{}, nil)
	return NewServer(gen, store, nil, nil)
}

func postGenerate(t *testing.T, s *Server, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestThemes(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/themes", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Themes []map[string]string `json:"themes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Themes) != 1 {
		t.Fatalf("themes = %d, want 1", len(body.Themes))
	}
	if body.Themes[0]["name"] != "noir_lights" || body.Themes[0]["mode"] != "night_lights" {
		t.Errorf("unexpected theme entry: %v", body.Themes[0])
	}
}

func TestGenerateSVG(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	rec := postGenerate(t, s, map[string]any{
		"city": "Berlin", "lat": 52.52, "lon": 13.405,
		"distance": 4000, "theme": "noir_lights", "format": "svg", "dpi": 150,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("<svg ")) {
		t.Error("body is not an SVG document")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *fakeSource
		body   map[string]any
		status int
	}{
		{
			"no coordinates and no city",
			&fakeSource{},
			map[string]any{"distance": 4000},
			http.StatusBadRequest,
		},
		{
			"invalid paper size",
			&fakeSource{},
			map[string]any{"city": "Berlin", "lat": 52.52, "lon": 13.405, "paper_size": "letter"},
			http.StatusBadRequest,
		},
		{
			"distance exceeded",
			&fakeSource{},
			map[string]any{"city": "Berlin", "lat": 52.52, "lon": 13.405, "distance": 99999},
			http.StatusBadRequest,
		},
		{
			"street network failure",
			&fakeSource{graphErr: errors.New(errors.ErrCodeNetwork, "overpass down")},
			map[string]any{"city": "Berlin", "lat": 52.52, "lon": 13.405, "distance": 4000},
			http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.source)
			rec := postGenerate(t, s, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}
