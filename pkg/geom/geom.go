// Package geom provides the planar geometry model shared by the fetch
// and render layers: points, line strings, polygons, tagged feature
// collections, and the street graph.
//
// Coordinates are either geographic (latitude/longitude in degrees) or
// projected planar meters; [Project] converts the former into the
// latter around a chosen center so that distances and extents behave
// linearly for drawing.
package geom

import "math"

// Point is a planar coordinate in map units (meters after projection).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLon is a geographic coordinate in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Expand grows the box to include p.
func (b BBox) Expand(p Point) BBox {
	if b.MinX == 0 && b.MaxX == 0 && b.MinY == 0 && b.MaxY == 0 {
		return BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	}
	return BBox{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

// Line is an open sequence of at least two points.
type Line []Point

// BBox returns the bounding box of the line.
func (l Line) BBox() BBox {
	var b BBox
	for i, p := range l {
		if i == 0 {
			b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		b = b.Expand(p)
	}
	return b
}

// Segments splits the line into consecutive two-point segments.
func (l Line) Segments() []Line {
	if len(l) < 2 {
		return nil
	}
	segs := make([]Line, 0, len(l)-1)
	for i := 0; i < len(l)-1; i++ {
		segs = append(segs, Line{l[i], l[i+1]})
	}
	return segs
}

// Polygon is a closed ring (exterior) with optional interior holes.
type Polygon struct {
	Exterior Line   `json:"exterior"`
	Holes    []Line `json:"holes,omitempty"`
}

// BBox returns the bounding box of the exterior ring.
func (p Polygon) BBox() BBox { return p.Exterior.BBox() }

// Area returns the absolute area of the exterior ring via the
// shoelace formula. Holes are ignored; callers use this for rough
// density decisions, not exact measurement.
func (p Polygon) Area() float64 {
	ring := p.Exterior
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return math.Abs(sum) / 2
}

// Contains reports whether pt lies inside the exterior ring using the
// even-odd rule. Holes are not considered.
func (p Polygon) Contains(pt Point) bool {
	ring := p.Exterior
	if len(ring) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		if (ring[i].Y > pt.Y) != (ring[j].Y > pt.Y) &&
			pt.X < (ring[j].X-ring[i].X)*(pt.Y-ring[i].Y)/(ring[j].Y-ring[i].Y)+ring[i].X {
			inside = !inside
		}
	}
	return inside
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
