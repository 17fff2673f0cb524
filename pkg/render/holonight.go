package render

import (
	"math"

	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Default hologram palette: cyan halos with icy cores.
var (
	holoOuterColors = [3]string{"#00FFFF", "#00D4FF", "#00A8E8"}
	holoInnerColors = [3]string{"#FFFFFF", "#E0FFFF", "#C0FFFF"}
	holoOuterKeys   = [3]string{"road_motorway", "road_secondary", "road_residential"}
	holoInnerKeys   = [3]string{"road_motorway_inner", "road_secondary_inner", "road_residential_inner"}
)

// renderHolonight draws the hologram style: every road tier in layered
// neon, bright nodes at street intersections, and a vignette over a
// deep blue-black ground.
func (e *Engine) renderHolonight(fig *Figure, req Request) {
	t := req.Theme
	b := req.Bundle

	water := HexOr(t.Color("water", "#021020"), "#021020")
	waterEdge := HexOr(t.Color("water_edge", "#004060"), "#004060")
	for _, f := range b.Layer("water").Polygons() {
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &water,
			Stroke: &waterEdge, StrokeWidth: 0.3,
			Alpha: 1, ZOrder: zWater,
		})
	}

	parks := HexOr(t.Color("parks", "#010408"), "#010408")
	for _, f := range b.Layer("parks").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &parks, Alpha: 0.95, ZOrder: zWater})
	}

	buildingFill := HexOr(t.Color("buildings_fill", "#040812"), "#040812")
	buildingEdge := HexOr(t.Color("buildings_edge", "#0A1530"), "#0A1530")
	for _, f := range b.Layer("buildings").Polygons() {
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &buildingFill,
			Stroke: &buildingEdge, StrokeWidth: 0.05,
			Alpha: 0.98, ZOrder: zParks,
		})
	}

	segments := graphSegments(b.Graph, roadTier, 3)

	glowLayers := t.Int("glow_layers", 10)
	glowIntensity := t.Float("glow_intensity", 1.0)
	falloff := t.Float("glow_falloff", 1.5)

	type tierGlow struct {
		tier   int
		width  float64
		layers int
		alpha  float64
		zorder float64
	}
	for _, g := range []tierGlow{
		{tierMinor, 0.3, 6, 0.6, zGlowMinor},
		{tierSecondary, 0.5, 8, 0.8, zGlowSecondary},
		{tierMajor, 0.9, glowLayers, glowIntensity, zGlowMajor},
	} {
		outerColor := HexOr(t.Color(holoOuterKeys[g.tier], holoOuterColors[g.tier]), holoOuterColors[g.tier])
		innerColor := HexOr(t.Color(holoInnerKeys[g.tier], holoInnerColors[g.tier]), holoInnerColors[g.tier])
		addHolonightGlow(fig, segments[g.tier], outerColor, innerColor, g.width, g.layers, g.alpha, falloff, g.zorder)
	}

	if t.Bool("render_intersections", true) {
		e.addIntersections(fig, t, b.Graph)
	}

	addVignette(fig, t.Float("vignette_intensity", 0.3))
}

// addIntersections marks graph nodes where three or more streets meet
// with layered glow dots sized by degree.
func (e *Engine) addIntersections(fig *Figure, t theme.Theme, g *geom.Graph) {
	glow := HexOr(t.Color("intersection_glow", "#00FFFF"), "#00FFFF")
	inner := HexOr(t.Color("intersection_glow_inner", "#FFFFFF"), "#FFFFFF")
	baseSize := t.Float("intersection_size", 2.5)

	degrees := g.Degrees()
	var pts []ScatterPoint
	for id, deg := range degrees {
		if deg < 3 {
			continue
		}
		node, ok := g.Nodes[id]
		if !ok {
			continue
		}
		size := baseSize * math.Min(float64(deg)/4, 2.5)
		pts = append(pts, ScatterPoint{P: geom.Point{X: node.X, Y: node.Y}, Size: size, Color: glow})
	}
	if len(pts) == 0 {
		return
	}

	innerPts := make([]ScatterPoint, len(pts))
	for i, p := range pts {
		innerPts[i] = p
		innerPts[i].Color = inner
	}

	fig.Add(
		ScatterOp{Points: scaleSizes(pts, 40), Alpha: 0.15, ZOrder: zIntersections},
		ScatterOp{Points: scaleSizes(pts, 15), Alpha: 0.35, ZOrder: zIntersections},
		ScatterOp{Points: scaleSizes(innerPts, 5), Alpha: 0.6, ZOrder: zIntersections},
		ScatterOp{Points: innerPts, Alpha: 0.9, ZOrder: zIntersections},
	)
}
