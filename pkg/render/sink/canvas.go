package sink

import (
	"math"

	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/render"
)

// canvas maps the figure's data window onto the paper surface. Canvas
// units are points; the data window covers the canvas fully, cropping
// overflow on the axis that does not match the paper aspect.
type canvas struct {
	w, h  float64 // canvas size in points
	scale float64 // data meters to points
	offX  float64
	offY  float64
	win   geom.BBox
}

func newCanvas(fig *render.Figure) canvas {
	inW, inH := fig.Paper.Inches()
	w, h := inW*72, inH*72
	win := fig.Window

	scale := 1.0
	if win.Width() > 0 && win.Height() > 0 {
		scale = math.Max(w/win.Width(), h/win.Height())
	}
	return canvas{
		w: w, h: h,
		scale: scale,
		offX:  (w - win.Width()*scale) / 2,
		offY:  (h - win.Height()*scale) / 2,
		win:   win,
	}
}

// pt maps a data point to canvas coordinates, flipping Y so north is
// up.
func (c canvas) pt(p geom.Point) (x, y float64) {
	x = (p.X-c.win.MinX)*c.scale + c.offX
	y = c.h - ((p.Y-c.win.MinY)*c.scale + c.offY)
	return x, y
}

// frac maps canvas fractions (origin bottom-left) to canvas
// coordinates, used by the text block.
func (c canvas) frac(fx, fy float64) (x, y float64) {
	return fx * c.w, (1 - fy) * c.h
}

// markerRadius converts a scatter marker area in square points to its
// circle radius.
func markerRadius(size float64) float64 {
	if size <= 0 {
		return 0
	}
	return math.Sqrt(size / math.Pi)
}

// vignetteRadius is the center-to-corner distance of a w by h canvas.
func vignetteRadius(w, h float64) float64 {
	return math.Hypot(w/2, h/2)
}

// vignetteAlpha is the corner darkening at normalized distance d from
// the canvas center, d = 1 at the corners.
func vignetteAlpha(d, intensity float64) float64 {
	a := d * d * intensity
	if a > 0.6 {
		a = 0.6
	}
	if a < 0 {
		a = 0
	}
	return a * 0.5
}

// gradientAlpha ramps from a0 to a1 following t^exponent.
func gradientAlpha(t, a0, a1, exponent float64) float64 {
	if exponent <= 0 {
		exponent = 1
	}
	return a0 + (a1-a0)*math.Pow(t, exponent)
}
