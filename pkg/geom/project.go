package geom

import "math"

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000.0

// Projection maps geographic coordinates to planar meters using an
// equirectangular projection centered on a reference point. Over the
// few tens of kilometers a poster covers, the distortion is far below
// visual tolerance.
type Projection struct {
	center LatLon
	cosLat float64
}

// NewProjection creates a projection centered on c.
func NewProjection(c LatLon) Projection {
	return Projection{center: c, cosLat: math.Cos(c.Lat * math.Pi / 180)}
}

// Center returns the geographic center of the projection.
func (p Projection) Center() LatLon { return p.center }

// ToPlane converts a geographic coordinate to planar meters relative
// to the projection center.
func (p Projection) ToPlane(ll LatLon) Point {
	return Point{
		X: (ll.Lon - p.center.Lon) * math.Pi / 180 * earthRadius * p.cosLat,
		Y: (ll.Lat - p.center.Lat) * math.Pi / 180 * earthRadius,
	}
}

// ToGeo converts a planar point back to geographic degrees.
func (p Projection) ToGeo(pt Point) LatLon {
	return LatLon{
		Lat: p.center.Lat + pt.Y/earthRadius*180/math.Pi,
		Lon: p.center.Lon + pt.X/(earthRadius*p.cosLat)*180/math.Pi,
	}
}

// ProjectGraph converts a graph whose node and geometry coordinates
// are (lon, lat) degrees into planar meters. The input is not
// modified.
func (p Projection) ProjectGraph(g *Graph) *Graph {
	if g == nil {
		return nil
	}
	out := NewGraph()
	for id, n := range g.Nodes {
		pt := p.ToPlane(LatLon{Lat: n.Y, Lon: n.X})
		out.Nodes[id] = Node{ID: id, X: pt.X, Y: pt.Y}
	}
	out.Edges = make([]Edge, len(g.Edges))
	for i, e := range g.Edges {
		pe := Edge{From: e.From, To: e.To, Highway: e.Highway}
		if len(e.Geometry) > 0 {
			pe.Geometry = p.projectLine(e.Geometry)
		}
		out.Edges[i] = pe
	}
	return out
}

// ProjectCollection converts a feature collection from (lon, lat)
// degrees into planar meters. The input is not modified.
func (p Projection) ProjectCollection(c *Collection) *Collection {
	if c.Empty() {
		return c
	}
	out := &Collection{Features: make([]Feature, len(c.Features))}
	for i, f := range c.Features {
		pf := Feature{Type: f.Type, Tags: f.Tags}
		switch f.Type {
		case TypePoint:
			pf.Point = p.ToPlane(LatLon{Lat: f.Point.Y, Lon: f.Point.X})
		case TypeLine:
			pf.Line = p.projectLine(f.Line)
		case TypePolygon:
			pf.Polygon = Polygon{Exterior: p.projectLine(f.Polygon.Exterior)}
			for _, h := range f.Polygon.Holes {
				pf.Polygon.Holes = append(pf.Polygon.Holes, p.projectLine(h))
			}
		}
		out.Features[i] = pf
	}
	return out
}

func (p Projection) projectLine(l Line) Line {
	out := make(Line, len(l))
	for i, pt := range l {
		out[i] = p.ToPlane(LatLon{Lat: pt.Y, Lon: pt.X})
	}
	return out
}
