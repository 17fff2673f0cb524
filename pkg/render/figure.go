package render

import (
	"sort"

	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/text"
)

// Figure is a finished poster: the display list plus everything a
// sink needs to materialize it at any resolution.
type Figure struct {
	Paper      paper.Size
	DPI        int
	Background Color
	Window     geom.BBox // data window shown by the canvas
	Fonts      text.FontSet

	ops []Op
}

// NewFigure creates an empty figure over the given data window.
func NewFigure(size paper.Size, dpi int, bg Color, window geom.BBox) *Figure {
	return &Figure{Paper: size, DPI: dpi, Background: bg, Window: window}
}

// Add appends drawing commands.
func (f *Figure) Add(ops ...Op) {
	f.ops = append(f.ops, ops...)
}

// Ops returns the display list in draw order. The sort is stable, so
// commands at equal Z keep insertion order.
func (f *Figure) Ops() []Op {
	out := make([]Op, len(f.ops))
	copy(out, f.ops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z() < out[j].Z() })
	return out
}

// PixelSize returns the raster dimensions at the figure's DPI.
func (f *Figure) PixelSize() (int, int) {
	w, h := f.Paper.Inches()
	return int(w * float64(f.DPI)), int(h * float64(f.DPI))
}
