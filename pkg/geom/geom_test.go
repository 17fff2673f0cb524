package geom

import (
	"math"
	"testing"
)

func TestBBoxExpand(t *testing.T) {
	b := BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b = b.Expand(Point{X: -5, Y: 20})

	if b.MinX != -5 || b.MaxY != 20 {
		t.Errorf("Expand = %+v", b)
	}
	if b.Width() != 15 || b.Height() != 20 {
		t.Errorf("Width/Height = %v/%v", b.Width(), b.Height())
	}
	if c := b.Center(); c.X != 2.5 || c.Y != 10 {
		t.Errorf("Center = %+v", c)
	}
}

func TestLineSegments(t *testing.T) {
	l := Line{{0, 0}, {1, 0}, {1, 1}}
	segs := l.Segments()
	if len(segs) != 2 {
		t.Fatalf("Segments = %d, want 2", len(segs))
	}
	if segs[1][0] != (Point{1, 0}) || segs[1][1] != (Point{1, 1}) {
		t.Errorf("second segment = %v", segs[1])
	}
	if (Line{{0, 0}}).Segments() != nil {
		t.Error("single-point line should have no segments")
	}
}

func TestPolygonArea(t *testing.T) {
	square := Polygon{Exterior: Line{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	if a := square.Area(); a != 100 {
		t.Errorf("Area = %v, want 100", a)
	}
	if a := (Polygon{Exterior: Line{{0, 0}, {1, 1}}}).Area(); a != 0 {
		t.Errorf("degenerate Area = %v, want 0", a)
	}
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{Exterior: Line{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	if !square.Contains(Point{5, 5}) {
		t.Error("center should be inside")
	}
	if square.Contains(Point{15, 5}) {
		t.Error("point to the right should be outside")
	}
	if square.Contains(Point{-1, -1}) {
		t.Error("point below-left should be outside")
	}
}

func TestGraphLine(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: 1, X: 0, Y: 0})
	g.AddNode(Node{ID: 2, X: 100, Y: 0})
	g.AddEdge(Edge{From: 1, To: 2, Highway: "residential"})
	g.AddEdge(Edge{From: 1, To: 2, Geometry: Line{{0, 0}, {50, 10}, {100, 0}}})

	if l := g.Line(g.Edges[0]); len(l) != 2 || l[1] != (Point{100, 0}) {
		t.Errorf("straight edge line = %v", l)
	}
	if l := g.Line(g.Edges[1]); len(l) != 3 {
		t.Errorf("geometry edge line = %v", l)
	}
}

func TestGraphDegrees(t *testing.T) {
	g := NewGraph()
	for i := int64(1); i <= 4; i++ {
		g.AddNode(Node{ID: i})
	}
	g.AddEdge(Edge{From: 1, To: 2})
	g.AddEdge(Edge{From: 1, To: 3})
	g.AddEdge(Edge{From: 1, To: 4})

	deg := g.Degrees()
	if deg[1] != 3 {
		t.Errorf("degree of hub = %d, want 3", deg[1])
	}
	if deg[2] != 1 {
		t.Errorf("degree of leaf = %d, want 1", deg[2])
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	proj := NewProjection(LatLon{Lat: 48.8566, Lon: 2.3522})

	orig := LatLon{Lat: 48.87, Lon: 2.36}
	pt := proj.ToPlane(orig)
	back := proj.ToGeo(pt)

	if math.Abs(back.Lat-orig.Lat) > 1e-9 || math.Abs(back.Lon-orig.Lon) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", back, orig)
	}

	// Center maps to origin.
	if c := proj.ToPlane(proj.Center()); c.X != 0 || c.Y != 0 {
		t.Errorf("center = %+v, want origin", c)
	}

	// One degree of latitude is roughly 111 km.
	north := proj.ToPlane(LatLon{Lat: 49.8566, Lon: 2.3522})
	if math.Abs(north.Y-111195) > 100 {
		t.Errorf("1 deg lat = %v m", north.Y)
	}
}

func TestWKTDeterministic(t *testing.T) {
	p := Polygon{Exterior: Line{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	w1 := p.WKT()
	w2 := p.WKT()
	if w1 != w2 {
		t.Error("WKT should be deterministic")
	}
	want := "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
	if w1 != want {
		t.Errorf("WKT = %q, want %q", w1, want)
	}

	// Already-closed rings are not double-closed.
	closed := Polygon{Exterior: Line{{0, 0}, {10, 0}, {0, 0}}}
	if got := closed.WKT(); got != "POLYGON ((0 0, 10 0, 0 0))" {
		t.Errorf("closed WKT = %q", got)
	}
}
