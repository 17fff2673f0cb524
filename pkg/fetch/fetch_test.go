package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/citymaps/cityposter/pkg/cache"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/layers"
)

// fakeSource counts upstream calls and returns canned geometry.
type fakeSource struct {
	graphCalls   int
	featureCalls int
	graph        *geom.Graph
	features     *geom.Collection
	err          error
}

func (s *fakeSource) FetchGraph(ctx context.Context, center geom.LatLon, distance float64) (*geom.Graph, error) {
	s.graphCalls++
	return s.graph, s.err
}

func (s *fakeSource) FetchFeatures(ctx context.Context, center geom.LatLon, distance float64, filter layers.TagFilter) (*geom.Collection, error) {
	s.featureCalls++
	return s.features, s.err
}

func testGraph() *geom.Graph {
	g := geom.NewGraph()
	g.AddNode(geom.Node{ID: 1, X: 2.35, Y: 48.85})
	g.AddNode(geom.Node{ID: 2, X: 2.36, Y: 48.86})
	g.AddEdge(geom.Edge{From: 1, To: 2, Highway: "residential"})
	return g
}

func newTestFetcher(t *testing.T, src Source) *Fetcher {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(src, c, nil, nil)
	f.sleep = func(time.Duration) {}
	return f
}

func TestFetchGraphCaches(t *testing.T) {
	src := &fakeSource{graph: testGraph()}
	f := newTestFetcher(t, src)
	ctx := context.Background()
	center := geom.LatLon{Lat: 48.8566, Lon: 2.3522}

	g1, err := f.FetchGraph(ctx, center, 8000)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := f.FetchGraph(ctx, center, 8000)
	if err != nil {
		t.Fatal(err)
	}

	if src.graphCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", src.graphCalls)
	}
	if g1.EdgeCount() != g2.EdgeCount() || g2.NodeCount() != 2 {
		t.Errorf("cached graph differs: %d nodes, %d edges", g2.NodeCount(), g2.EdgeCount())
	}
	if g2.Edges[0].Highway != "residential" {
		t.Errorf("highway tag lost in cache round trip: %q", g2.Edges[0].Highway)
	}
}

func TestFetchGraphDistinctKeys(t *testing.T) {
	src := &fakeSource{graph: testGraph()}
	f := newTestFetcher(t, src)
	ctx := context.Background()
	center := geom.LatLon{Lat: 48.8566, Lon: 2.3522}

	if _, err := f.FetchGraph(ctx, center, 4000); err != nil {
		t.Fatal(err)
	}
	if _, err := f.FetchGraph(ctx, center, 8000); err != nil {
		t.Fatal(err)
	}
	if src.graphCalls != 2 {
		t.Errorf("different radii should not share a cache entry, calls = %d", src.graphCalls)
	}
}

func TestFetchFeaturesCaches(t *testing.T) {
	src := &fakeSource{features: &geom.Collection{Features: []geom.Feature{
		{Type: geom.TypePolygon, Polygon: geom.Polygon{Exterior: geom.Line{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}, Tags: map[string]string{"building": "yes"}},
	}}}
	f := newTestFetcher(t, src)
	ctx := context.Background()
	center := geom.LatLon{Lat: 48.8566, Lon: 2.3522}

	c1, err := f.FetchFeatures(ctx, "buildings", center, 8000, layers.Tags["buildings"])
	if err != nil {
		t.Fatal(err)
	}
	c2, err := f.FetchFeatures(ctx, "buildings", center, 8000, layers.Tags["buildings"])
	if err != nil {
		t.Fatal(err)
	}

	if src.featureCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", src.featureCalls)
	}
	if len(c1.Features) != len(c2.Features) {
		t.Errorf("cached collection differs")
	}
	if c2.Features[0].Tag("building") != "yes" {
		t.Errorf("tags lost in cache round trip")
	}
}

func TestFetchFeaturesNilMeansSkip(t *testing.T) {
	src := &fakeSource{features: nil}
	f := newTestFetcher(t, src)

	c, err := f.FetchFeatures(context.Background(), "hedges", geom.LatLon{}, 2000, layers.Tags["hedges"])
	if err != nil {
		t.Fatal(err)
	}
	if c != nil {
		t.Errorf("empty layer should stay nil, got %+v", c)
	}
}

func TestFetchGraphThrottlesFreshFetchOnly(t *testing.T) {
	src := &fakeSource{graph: testGraph()}
	f := newTestFetcher(t, src)

	var slept int
	f.sleep = func(time.Duration) { slept++ }

	ctx := context.Background()
	center := geom.LatLon{Lat: 1, Lon: 2}
	if _, err := f.FetchGraph(ctx, center, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := f.FetchGraph(ctx, center, 1000); err != nil {
		t.Fatal(err)
	}
	if slept != 1 {
		t.Errorf("sleeps = %d, want 1 (cache hits skip the throttle)", slept)
	}
}
