package render

import (
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/text"
)

// Draw order per layer. Later layers cover earlier ones.
const (
	zLandscape     = 0.0
	zWater         = 1.0
	zWaterways     = 1.5
	zParks         = 2.0
	zLeisure       = 2.5
	zAmenities     = 2.8
	zBuildings     = 3.0
	zHedges        = 3.5
	zPaths         = 4.0
	zRailways      = 4.5
	zRoads         = 5.0
	zWindowLights  = 8.0
	zIntersections = 9.0
	zGradients     = 10.0
	zText          = 11.0
	zHorizon       = 12.0
	zVignette      = 15.0
)

// Op is one drawing command of the display list. Z orders the list;
// coordinates are in the figure's data window unless stated otherwise.
type Op interface {
	Z() float64
}

// PolygonOp fills and/or strokes a polygon. A nil Fill or Stroke
// skips that part.
type PolygonOp struct {
	Poly        geom.Polygon
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
	Alpha       float64
	ZOrder      float64
}

func (o PolygonOp) Z() float64 { return o.ZOrder }

// LineOp strokes a line string. Width is in points. A non-nil Dash
// pattern alternates drawn and skipped lengths, also in points.
type LineOp struct {
	Line   geom.Line
	Color  Color
	Width  float64
	Alpha  float64
	Dash   []float64
	ZOrder float64
}

func (o LineOp) Z() float64 { return o.ZOrder }

// MultiLineOp strokes many segments with one style, the bulk format
// for road and glow passes.
type MultiLineOp struct {
	Lines  []geom.Line
	Color  Color
	Width  float64
	Alpha  float64
	ZOrder float64
}

func (o MultiLineOp) Z() float64 { return o.ZOrder }

// ScatterPoint is one dot of a scatter pass. Size is the marker area
// in square points.
type ScatterPoint struct {
	P     geom.Point
	Size  float64
	Color Color
}

// ScatterOp draws a batch of dots sharing one alpha.
type ScatterOp struct {
	Points []ScatterPoint
	Alpha  float64
	ZOrder float64
}

func (o ScatterOp) Z() float64 { return o.ZOrder }

// TextOp draws a string at a canvas-fraction position, origin at the
// bottom-left corner.
type TextOp struct {
	Text   string
	X, Y   float64
	Size   int
	Weight text.Weight
	Color  Color
	Alpha  float64
	Align  string
	VAlign string
	ZOrder float64
}

func (o TextOp) Z() float64 { return o.ZOrder }

// RuleOp draws the horizontal decorative rule of the text block, in
// canvas fractions. Width is the stroke width in points.
type RuleOp struct {
	X1, X2, Y float64
	Color     Color
	Width     float64
	ZOrder    float64
}

func (o RuleOp) Z() float64 { return o.ZOrder }

// VGradientOp overlays a vertical gradient band spanning canvas
// fractions Y0 to Y1. Alpha ramps from A0 at Y0 to A1 at Y1 following
// t^Exponent.
type VGradientOp struct {
	Color    Color
	Y0, Y1   float64
	A0, A1   float64
	Exponent float64
	ZOrder   float64
}

func (o VGradientOp) Z() float64 { return o.ZOrder }

// VignetteOp darkens the canvas radially from the window center:
// alpha = clip(d_norm^2 * Intensity, 0, 0.6) * 0.5 at normalized
// distance d_norm from the center.
type VignetteOp struct {
	Intensity float64
	ZOrder    float64
}

func (o VignetteOp) Z() float64 { return o.ZOrder }
