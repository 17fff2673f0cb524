package render

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/citymaps/cityposter/pkg/geom"
)

// Default constructivist block palette and its pick weights.
var (
	kandinBlockColors  = []string{"#E8642C", "#3C4654", "#8B8860"}
	kandinBlockWeights = []float64{0.4, 0.35, 0.25}
)

// Road greys per class for the kandincity mode, dark to light down the
// hierarchy.
var kandinRoads = map[string]struct {
	hex      string
	widthKey string
	width    float64
}{
	"motorway":      {"#1A1A1A", "road_width_motorway", 1.2},
	"trunk":         {"#1A1A1A", "road_width_motorway", 1.2},
	"primary":       {"#2A2A2A", "road_width_primary", 1.0},
	"secondary":     {"#3A3A3A", "road_width_secondary", 0.8},
	"tertiary":      {"#4A4A4A", "road_width_tertiary", 0.6},
	"residential":   {"#5A5A5A", "road_width_residential", 0.4},
	"living_street": {"#5A5A5A", "road_width_residential", 0.4},
}

// renderKandincity draws the abstract art style: building blocks in a
// small weighted palette over a warm paper tone, with the street grid
// in flat greys. Block colors are seeded from each footprint's
// geometry so a city renders the same every time.
func (e *Engine) renderKandincity(fig *Figure, req Request) {
	t := req.Theme
	b := req.Bundle

	water := HexOr(t.Color("water", fig.Background.Hex()), fig.Background.Hex())
	for _, f := range b.Layer("water").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &water, Alpha: 1, ZOrder: zWater})
	}

	parks := HexOr(t.Color("parks", "#8B9860"), "#8B9860")
	for _, f := range b.Layer("parks").Polygons() {
		fig.Add(PolygonOp{Poly: f.Polygon, Fill: &parks, Alpha: 0.9, ZOrder: zParks})
	}

	palette := parsePalette(t.Strings("block_colors", kandinBlockColors), kandinBlockColors)
	weights := t.Floats("block_color_weights")
	if len(weights) != len(palette) {
		weights = uniformWeights(len(palette))
	}
	edge := HexOr(t.Color("buildings_edge", "#1A1A1A"), "#1A1A1A")
	edgeWidth := t.Float("building_edge_width", 0.3)
	for _, f := range b.Layer("buildings").Polygons() {
		fill := blockColor(f.Polygon, palette, weights)
		fig.Add(PolygonOp{
			Poly: f.Polygon, Fill: &fill,
			Stroke: &edge, StrokeWidth: edgeWidth,
			Alpha: 1, ZOrder: zBuildings,
		})
	}

	for _, edge := range b.Graph.Edges {
		line := b.Graph.Line(edge)
		if len(line) < 2 {
			continue
		}
		class, ok := kandinRoads[edge.Highway]
		if !ok {
			class.hex = "#6A6A6A"
			class.widthKey = "road_width_default"
			class.width = 0.3
		}
		width := t.Float(class.widthKey, class.width)
		fig.Add(LineOp{Line: line, Color: HexOr(class.hex, class.hex), Width: width, Alpha: 1, ZOrder: zRoads})
	}
}

// blockColor picks a palette entry for one footprint, seeded from its
// geometry so the choice is stable across renders.
func blockColor(p geom.Polygon, palette []Color, weights []float64) Color {
	h := fnv.New64a()
	h.Write([]byte(p.WKT()))
	seed := h.Sum64() % 1_000_000

	rng := rand.New(rand.NewPCG(seed, seed))
	return weightedChoice(rng, palette, weights)
}

// weightedChoice samples one color proportionally to weights.
func weightedChoice(rng *rand.Rand, palette []Color, weights []float64) Color {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return palette[rng.IntN(len(palette))]
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return palette[i]
		}
	}
	return palette[len(palette)-1]
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
