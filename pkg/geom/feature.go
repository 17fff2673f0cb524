package geom

// GeometryType discriminates the shape carried by a Feature.
type GeometryType string

const (
	TypePoint   GeometryType = "point"
	TypeLine    GeometryType = "line"
	TypePolygon GeometryType = "polygon"
)

// Feature is one geometric record with its OSM attribute tags.
// Exactly one of Point, Line, or Polygon is meaningful, selected by
// Type.
type Feature struct {
	Type    GeometryType      `json:"type"`
	Point   Point             `json:"point,omitempty"`
	Line    Line              `json:"line,omitempty"`
	Polygon Polygon           `json:"polygon,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// Tag returns the value of key, or "" when absent.
func (f Feature) Tag(key string) string { return f.Tags[key] }

// BBox returns the bounding box of the feature's geometry.
func (f Feature) BBox() BBox {
	switch f.Type {
	case TypeLine:
		return f.Line.BBox()
	case TypePolygon:
		return f.Polygon.BBox()
	default:
		return BBox{MinX: f.Point.X, MinY: f.Point.Y, MaxX: f.Point.X, MaxY: f.Point.Y}
	}
}

// Collection is a set of features fetched for one layer.
type Collection struct {
	Features []Feature `json:"features"`
}

// Empty reports whether the collection is nil or has no features.
func (c *Collection) Empty() bool { return c == nil || len(c.Features) == 0 }

// Polygons returns only the polygon features.
func (c *Collection) Polygons() []Feature {
	return c.byType(TypePolygon)
}

// Lines returns only the line features.
func (c *Collection) Lines() []Feature {
	return c.byType(TypeLine)
}

func (c *Collection) byType(t GeometryType) []Feature {
	if c.Empty() {
		return nil
	}
	out := make([]Feature, 0, len(c.Features))
	for _, f := range c.Features {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// Bundle is the per-render working set: the street graph plus the
// optional feature layers keyed by layer name ("water", "parks",
// "buildings", ...). A nil entry means the layer is unavailable and
// is skipped by the renderer.
type Bundle struct {
	Graph  *Graph
	Layers map[string]*Collection
}

// Layer returns the named collection, or nil when absent.
func (b *Bundle) Layer(name string) *Collection {
	if b == nil || b.Layers == nil {
		return nil
	}
	return b.Layers[name]
}
