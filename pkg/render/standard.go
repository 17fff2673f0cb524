package render

import (
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Detail layer line widths in points.
const (
	pathsWidth        = 0.3
	buildingEdgeWidth = 0.2
	waterwaysWidth    = 0.5
	railwaysWidth     = 0.6
	hedgesWidth       = 0.2
)

// renderStandard draws the flat daylight style: tinted landscape and
// water underneath, building footprints, the road hierarchy on top,
// and gradient fades toward both canvas edges.
func (e *Engine) renderStandard(fig *Figure, req Request) {
	t := req.Theme
	b := req.Bundle

	for _, f := range b.Layer("landscape").Polygons() {
		c := landscapeColor(t, f)
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &c, Alpha: 0.5, ZOrder: zLandscape})
	}

	water := HexOr(t.Color("water", "#A8DADC"), "#A8DADC")
	for _, f := range b.Layer("water").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &water, Alpha: 1, ZOrder: zWater})
	}

	waterway := HexOr(t.Color("waterways", "#7CB9E8"), "#7CB9E8")
	for _, f := range b.Layer("waterways").Lines() {
		fig.Add(LineOp{Line: f.Line, Color: waterway, Width: waterwaysWidth, Alpha: 0.8, ZOrder: zWaterways})
	}

	parks := HexOr(t.Color("parks", "#90BE6D"), "#90BE6D")
	for _, f := range b.Layer("parks").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &parks, Alpha: 1, ZOrder: zParks})
	}

	leisure := HexOr(t.Color("leisure", "#C5E1A5"), "#C5E1A5")
	for _, f := range b.Layer("leisure").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &leisure, Alpha: 0.6, ZOrder: zLeisure})
	}

	amenityFill := HexOr(t.Color("amenities", "#E0E0E0"), "#E0E0E0")
	amenityEdge := HexOr(t.Color("amenities_edge", "#808080"), "#808080")
	for _, f := range b.Layer("amenities").Polygons() {
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &amenityFill,
			Stroke: &amenityEdge, StrokeWidth: 0.3,
			Alpha: 0.7, ZOrder: zAmenities,
		})
	}

	buildingFill := HexOr(t.Color("buildings_fill", "#E8E8E8"), "#E8E8E8")
	buildingEdge := HexOr(t.Color("buildings", "#D0D0D0"), "#D0D0D0")
	for _, f := range b.Layer("buildings").Polygons() {
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &buildingFill,
			Stroke: &buildingEdge, StrokeWidth: buildingEdgeWidth,
			Alpha: 0.8, ZOrder: zBuildings,
		})
	}

	hedge := HexOr(t.Color("hedges", "#6B8E23"), "#6B8E23")
	for _, f := range b.Layer("hedges").Lines() {
		fig.Add(LineOp{Line: f.Line, Color: hedge, Width: hedgesWidth, Alpha: 0.7, ZOrder: zHedges})
	}

	path := HexOr(t.Color("paths", "#B0B0B0"), "#B0B0B0")
	for _, f := range b.Layer("paths").Lines() {
		fig.Add(LineOp{Line: f.Line, Color: path, Width: pathsWidth, Alpha: 0.6, ZOrder: zPaths})
	}

	railway := HexOr(t.Color("railways", "#4A4A4A"), "#4A4A4A")
	for _, f := range b.Layer("railways").Lines() {
		fig.Add(LineOp{
			Line: f.Line, Color: railway, Width: railwaysWidth,
			Dash: []float64{5, 3}, Alpha: 0.9, ZOrder: zRailways,
		})
	}

	for _, edge := range b.Graph.Edges {
		line := b.Graph.Line(edge)
		if len(line) < 2 {
			continue
		}
		color, width := roadStyle(t, edge.Highway)
		fig.Add(LineOp{Line: line, Color: color, Width: width, Alpha: 1, ZOrder: zRoads})
	}

	gradient := HexOr(t.Color("gradient_color", "#000000"), "#000000")
	fig.Add(
		VGradientOp{Color: gradient, Y0: 0, Y1: 0.25, A0: 1, A1: 0, Exponent: 1, ZOrder: zGradients},
		VGradientOp{Color: gradient, Y0: 0.75, Y1: 1, A0: 0, A1: 1, Exponent: 1, ZOrder: zGradients},
	)
}

// landscapeColor picks the land-use tint for one landscape feature.
func landscapeColor(t theme.Theme, f geom.Feature) Color {
	landuse := f.Tag("landuse")
	natural := f.Tag("natural")

	key := "meadow"
	switch {
	case landuse == "farmland":
		key = "farmland"
	case landuse == "meadow" || natural == "grassland":
		key = "meadow"
	case landuse == "forest" || natural == "wood" || natural == "scrub":
		key = "forest"
	}
	return HexOr(t.Color(key, "#90BE6D"), "#90BE6D")
}
