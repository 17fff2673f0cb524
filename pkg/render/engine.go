// Package render turns fetched geometry and a theme into a poster
// figure. The engine dispatches on the theme's render mode and emits a
// device-independent display list; the sink subpackage materializes it
// as PNG, SVG, or PDF.
package render

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/text"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Request carries everything one render needs. The bundle must hold a
// projected street graph; feature layers are optional and skipped when
// nil.
type Request struct {
	Theme    theme.Theme
	Bundle   *geom.Bundle
	Paper    paper.Size
	DPI      int
	Distance float64
	Overlay  text.Overlay
}

// Engine renders figures. It holds no per-render state; one engine
// serves concurrent renders.
type Engine struct {
	logger *log.Logger
}

// NewEngine creates an engine. A nil logger discards diagnostics.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{logger: logger}
}

// Render produces the figure for req, dispatching on the theme mode.
// A missing or empty street graph is the one fatal input; everything
// else degrades.
func (e *Engine) Render(req Request) (*Figure, error) {
	if req.Bundle == nil || req.Bundle.Graph == nil || req.Bundle.Graph.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeStreetNetwork, "no street network to render")
	}

	mode := req.Theme.Mode()
	graphBox := req.Bundle.Graph.BBox()

	// The night modes show the full fetched extent; the flat modes
	// crop it to the paper's aspect ratio.
	window := graphBox
	switch mode {
	case theme.ModeStandard, theme.ModeKandincity:
		window = cropToAspect(graphBox, req.Paper.Aspect())
	}

	bg := HexOr(req.Theme.Color("bg", modeBackground(mode)), modeBackground(mode))
	fig := NewFigure(req.Paper, req.DPI, bg, window)

	e.logger.Debugf("Rendering %s mode, window %.0fx%.0fm", mode, window.Width(), window.Height())

	switch mode {
	case theme.ModeNightLights:
		e.renderNightLights(fig, req)
	case theme.ModeHolonight:
		e.renderHolonight(fig, req)
	case theme.ModeKandincity:
		e.renderKandincity(fig, req)
	default:
		e.renderStandard(fig, req)
	}

	e.applyOverlay(fig, req)
	return fig, nil
}

// modeBackground is the fallback background per render mode.
func modeBackground(m theme.Mode) string {
	switch m {
	case theme.ModeNightLights:
		return "#040408"
	case theme.ModeHolonight:
		return "#000008"
	case theme.ModeKandincity:
		return "#E8DCC8"
	default:
		return "#FFFFFF"
	}
}

// cropToAspect shrinks box around its center until width/height
// matches aspect. It only crops, never pads, so the map always fills
// the canvas.
func cropToAspect(box geom.BBox, aspect float64) geom.BBox {
	w, h := box.Width(), box.Height()
	if w <= 0 || h <= 0 || aspect <= 0 {
		return box
	}
	center := box.Center()

	current := w / h
	switch {
	case current > aspect:
		half := h * aspect / 2
		return geom.BBox{MinX: center.X - half, MinY: box.MinY, MaxX: center.X + half, MaxY: box.MaxY}
	case current < aspect:
		half := w / aspect / 2
		return geom.BBox{MinX: box.MinX, MinY: center.Y - half, MaxX: box.MaxX, MaxY: center.Y + half}
	default:
		return box
	}
}

// applyOverlay converts the text block into display-list ops.
func (e *Engine) applyOverlay(fig *Figure, req Request) {
	o := req.Overlay
	o.Paper = req.Paper
	o.Distance = req.Distance
	if o.Color == "" {
		o.Color = req.Theme.Color("text", "#000000")
	}
	color := HexOr(o.Color, "#000000")

	for _, item := range o.Layout() {
		switch item.Kind {
		case text.ItemRule:
			fig.Add(RuleOp{
				X1:     item.X,
				X2:     item.X2,
				Y:      item.Y,
				Color:  color,
				Width:  item.Width,
				ZOrder: zText,
			})
		default:
			fig.Add(TextOp{
				Text:   item.Text,
				X:      item.X,
				Y:      item.Y,
				Size:   item.Size,
				Weight: item.Weight,
				Color:  color,
				Alpha:  item.Alpha,
				Align:  item.Align,
				VAlign: item.VAlign,
				ZOrder: zText,
			})
		}
	}
}

// graphSegments splits every edge of the graph into two-point
// segments, bucketed by the classifier.
func graphSegments(g *geom.Graph, classify func(highway string) int, buckets int) [][]geom.Line {
	out := make([][]geom.Line, buckets)
	for _, edge := range g.Edges {
		line := g.Line(edge)
		if len(line) < 2 {
			continue
		}
		tier := classify(edge.Highway)
		out[tier] = append(out[tier], line.Segments()...)
	}
	return out
}
