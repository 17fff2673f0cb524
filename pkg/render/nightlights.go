package render

import (
	"math"
	"math/rand/v2"

	"github.com/citymaps/cityposter/pkg/geom"
)

// Glow stacking order per road tier. Brighter tiers draw on top.
const (
	zGlowMinor     = 3.0
	zGlowSecondary = 4.0
	zGlowMajor     = zRoads
)

// Default sodium-lamp palette: warm outer halos, near-white cores.
var (
	nightOuterColors = [3]string{"#FFB030", "#FF9020", "#E07010"}
	nightInnerColors = [3]string{"#FFEEDD", "#FFE0C0", "#FFD8A8"}
	nightOuterKeys   = [3]string{"road_motorway", "road_secondary", "road_residential"}
	nightInnerKeys   = [3]string{"road_motorway_inner", "road_secondary_inner", "road_residential_inner"}
)

var windowLightsInner = []string{"#E8E8FF", "#D0E0FF", "#F0F0FF", "#FFFFFF"}
var windowLightsOuter = []string{"#FFE4B5", "#FFEFD5", "#FFD700", "#FFA500"}

// renderNightLights draws the aerial-at-night style: glowing street
// lattice over near-black ground, lit building windows, a horizon glow
// at the top, and a vignette.
func (e *Engine) renderNightLights(fig *Figure, req Request) {
	t := req.Theme
	b := req.Bundle

	water := HexOr(t.Color("water", "#020208"), "#020208")
	reflection := HexOr(t.Color("water_reflection", "#FFB347"), "#FFB347")
	for _, f := range b.Layer("water").Polygons() {
		fig.Add(
			PolygonOp{Poly: f.Polygon, Fill: &water, Alpha: 1, ZOrder: zWater},
			PolygonOp{Poly: f.Polygon, Fill: &reflection, Alpha: 0.15, ZOrder: zWaterways},
		)
	}

	parks := HexOr(t.Color("parks", "#030306"), "#030306")
	for _, f := range b.Layer("parks").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &parks, Alpha: 0.95, ZOrder: zWater})
	}

	buildingFill := HexOr(t.Color("buildings_fill", "#08080f"), "#08080f")
	buildingEdge := HexOr(t.Color("buildings_edge", "#101018"), "#101018")
	buildings := b.Layer("buildings").Polygons()
	for _, f := range buildings {
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &buildingFill,
			Stroke: &buildingEdge, StrokeWidth: 0.08,
			Alpha: 0.97, ZOrder: zParks,
		})
	}

	// Split each tier into an inner core near the center and an outer
	// ring; the core draws with the brighter palette so the city heart
	// reads hotter.
	center := fig.Window.Center()
	maxExtent := math.Max(fig.Window.Width(), fig.Window.Height()) / 2
	inner, outer := splitByDistance(b.Graph, center, maxExtent*0.4)

	glowLayers := t.Int("glow_layers", 8)
	glowIntensity := t.Float("glow_intensity", 0.9)

	type tierGlow struct {
		tier   int
		width  float64
		layers int
		alpha  float64
		zorder float64
	}
	for _, g := range []tierGlow{
		{tierMinor, 0.25, 5, 0.45, zGlowMinor},
		{tierSecondary, 0.45, 6, 0.65, zGlowSecondary},
		{tierMajor, 0.8, glowLayers, glowIntensity, zGlowMajor},
	} {
		outerColor := HexOr(t.Color(nightOuterKeys[g.tier], nightOuterColors[g.tier]), nightOuterColors[g.tier])
		innerColor := HexOr(t.Color(nightInnerKeys[g.tier], nightInnerColors[g.tier]), nightInnerColors[g.tier])
		addGlow(fig, outer[g.tier], outerColor, g.width, g.layers, g.alpha, g.zorder)
		addGlow(fig, inner[g.tier], innerColor, g.width, g.layers, g.alpha, g.zorder)
	}

	e.addWindowLights(fig, req, buildings)

	horizon := HexOr(t.Color("horizon_glow", "#0a1530"), "#0a1530")
	intensity := t.Float("horizon_intensity", 0.25)
	fig.Add(VGradientOp{Color: horizon, Y0: 0.7, Y1: 1, A0: 0, A1: intensity, Exponent: 2, ZOrder: zHorizon})

	addVignette(fig, t.Float("vignette_intensity", 0.3))
}

// splitByDistance buckets every edge segment by road tier and by
// whether its midpoint lies within radius of center.
func splitByDistance(g *geom.Graph, center geom.Point, radius float64) (inner, outer [][]geom.Line) {
	inner = make([][]geom.Line, 3)
	outer = make([][]geom.Line, 3)
	for _, edge := range g.Edges {
		line := g.Line(edge)
		if len(line) < 2 {
			continue
		}
		tier := roadTier(edge.Highway)
		for _, seg := range line.Segments() {
			mid := geom.Point{X: (seg[0].X + seg[1].X) / 2, Y: (seg[0].Y + seg[1].Y) / 2}
			if geom.Dist(mid, center) < radius {
				inner[tier] = append(inner[tier], seg)
			} else {
				outer[tier] = append(outer[tier], seg)
			}
		}
	}
	return inner, outer
}

// addWindowLights scatters lit windows over building footprints large
// enough to plausibly hold them. Point placement is seeded from the
// window so repeated renders of the same extent match.
func (e *Engine) addWindowLights(fig *Figure, req Request, buildings []geom.Feature) {
	t := req.Theme
	innerPalette := parsePalette(t.Strings("window_lights_inner", windowLightsInner), windowLightsInner)
	outerPalette := parsePalette(t.Strings("window_lights_outer", windowLightsOuter), windowLightsOuter)

	rng := windowRand(fig.Window)

	var innerPts, outerPts []ScatterPoint
	for _, f := range buildings {
		box := f.Polygon.BBox()
		if box.Width() < 10 || box.Height() < 10 {
			continue
		}
		n := int(box.Width() * box.Height() / 400)
		if n > 6 {
			n = 6
		}
		for i := 0; i < n; i++ {
			p := geom.Point{
				X: box.MinX + 2 + rng.Float64()*(box.Width()-4),
				Y: box.MinY + 2 + rng.Float64()*(box.Height()-4),
			}
			if !f.Polygon.Contains(p) {
				continue
			}
			size := 0.3 + rng.Float64()*1.2
			outerPts = append(outerPts, ScatterPoint{P: p, Size: size, Color: outerPalette[rng.IntN(len(outerPalette))]})
			innerPts = append(innerPts, ScatterPoint{P: p, Size: size, Color: innerPalette[rng.IntN(len(innerPalette))]})
		}
	}
	if len(outerPts) == 0 {
		return
	}

	fig.Add(
		ScatterOp{Points: scaleSizes(outerPts, 20), Alpha: 0.15, ZOrder: zWindowLights},
		ScatterOp{Points: scaleSizes(outerPts, 5), Alpha: 0.4, ZOrder: zWindowLights + 1},
		ScatterOp{Points: innerPts, Alpha: 0.9, ZOrder: zWindowLights + 2},
	)
}

// addVignette darkens the canvas corners. Intensity at or below zero
// disables it.
func addVignette(fig *Figure, intensity float64) {
	if intensity <= 0 {
		return
	}
	fig.Add(VignetteOp{Intensity: intensity, ZOrder: zVignette})
}

// windowRand derives a deterministic generator from the data window so
// identical extents place identical scatter.
func windowRand(w geom.BBox) *rand.Rand {
	s1 := uint64(math.Float64bits(w.MinX)) ^ uint64(math.Float64bits(w.MaxY))<<1
	s2 := uint64(math.Float64bits(w.MaxX)) ^ uint64(math.Float64bits(w.MinY))<<1
	return rand.New(rand.NewPCG(s1, s2))
}

// parsePalette converts hex strings to colors, falling back wholesale
// when any entry is malformed.
func parsePalette(hexes, def []string) []Color {
	out := make([]Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return parsePalette(def, def)
		}
		out = append(out, c)
	}
	return out
}

// scaleSizes returns a copy of pts with every marker area multiplied.
func scaleSizes(pts []ScatterPoint, factor float64) []ScatterPoint {
	out := make([]ScatterPoint, len(pts))
	for i, p := range pts {
		out[i] = p
		out[i].Size = p.Size * factor
	}
	return out
}
