package sink

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/render"
	"github.com/citymaps/cityposter/pkg/text"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// RenderSVG materializes the figure as an SVG document. The viewBox is
// in points; width and height carry the raster size at the figure's
// DPI so converters produce the right resolution.
func RenderSVG(fig *render.Figure) []byte {
	c := newCanvas(fig)
	pxW, pxH := fig.PixelSize()
	ops := fig.Ops()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%d" height="%d">`+"\n",
		c.w, c.h, pxW, pxH)

	writeDefs(&buf, c, ops)

	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", c.w, c.h, fig.Background.Hex())

	family := fontFamily(fig.Fonts)
	for i, op := range ops {
		switch o := op.(type) {
		case render.PolygonOp:
			writePolygon(&buf, c, o)
		case render.LineOp:
			writeLine(&buf, c, o.Line, o.Color, o.Width, o.Alpha, o.Dash)
		case render.MultiLineOp:
			writeMultiLine(&buf, c, o)
		case render.ScatterOp:
			writeScatter(&buf, c, o)
		case render.TextOp:
			writeText(&buf, c, o, family)
		case render.RuleOp:
			x1, y := c.frac(o.X1, o.Y)
			x2, _ := c.frac(o.X2, o.Y)
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f"/>`+"\n",
				x1, y, x2, y, o.Color.Hex(), o.Width)
		case render.VGradientOp:
			_, yTop := c.frac(0, o.Y1)
			_, yBottom := c.frac(0, o.Y0)
			fmt.Fprintf(&buf, `  <rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="url(#grad%d)"/>`+"\n",
				yTop, c.w, yBottom-yTop, i)
		case render.VignetteOp:
			fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="url(#vignette%d)"/>`+"\n", c.w, c.h, i)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeDefs emits the gradient definitions referenced by gradient and
// vignette commands, keyed by their display-list index.
func writeDefs(buf *bytes.Buffer, c canvas, ops []render.Op) {
	var defs bytes.Buffer
	for i, op := range ops {
		switch o := op.(type) {
		case render.VGradientOp:
			// Offset 0 is the rect's top edge, which maps to Y1.
			fmt.Fprintf(&defs, `    <linearGradient id="grad%d" x1="0" y1="0" x2="0" y2="1">`+"\n", i)
			const stops = 8
			for s := 0; s <= stops; s++ {
				offset := float64(s) / stops
				alpha := gradientAlpha(1-offset, o.A0, o.A1, o.Exponent)
				fmt.Fprintf(&defs, `      <stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>`+"\n",
					offset, o.Color.Hex(), o.Color.WithAlpha(alpha).A)
			}
			defs.WriteString("    </linearGradient>\n")
		case render.VignetteOp:
			fmt.Fprintf(&defs, `    <radialGradient id="vignette%d" cx="0.5" cy="0.5" r="0.7071">`+"\n", i)
			const stops = 8
			for s := 0; s <= stops; s++ {
				d := float64(s) / stops
				fmt.Fprintf(&defs, `      <stop offset="%.3f" stop-color="#000000" stop-opacity="%.3f"/>`+"\n",
					d, vignetteAlpha(d, o.Intensity))
			}
			defs.WriteString("    </radialGradient>\n")
		}
	}
	if defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
}

func writePolygon(buf *bytes.Buffer, c canvas, o render.PolygonOp) {
	var d strings.Builder
	writeRing(&d, c, o.Poly.Exterior)
	for _, hole := range o.Poly.Holes {
		writeRing(&d, c, hole)
	}

	fill, fillOpacity := "none", 0.0
	if o.Fill != nil {
		fill = o.Fill.Hex()
		fillOpacity = o.Fill.WithAlpha(o.Alpha).A
	}
	fmt.Fprintf(buf, `  <path d="%s" fill-rule="evenodd" fill="%s"`, d.String(), fill)
	if o.Fill != nil {
		fmt.Fprintf(buf, ` fill-opacity="%.3f"`, fillOpacity)
	}
	if o.Stroke != nil {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"`,
			o.Stroke.Hex(), o.StrokeWidth, o.Stroke.WithAlpha(o.Alpha).A)
	}
	buf.WriteString("/>\n")
}

func writeRing(d *strings.Builder, c canvas, ring geom.Line) {
	for i, p := range ring {
		x, y := c.pt(p)
		if i == 0 {
			fmt.Fprintf(d, "M %.1f %.1f ", x, y)
			continue
		}
		fmt.Fprintf(d, "L %.1f %.1f ", x, y)
	}
	d.WriteString("Z ")
}

func writeLine(buf *bytes.Buffer, c canvas, line geom.Line, color render.Color, width, alpha float64, dash []float64) {
	var pts strings.Builder
	for i, p := range line {
		x, y := c.pt(p)
		if i > 0 {
			pts.WriteString(" ")
		}
		fmt.Fprintf(&pts, "%.1f,%.1f", x, y)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f" stroke-linecap="round"`,
		pts.String(), color.Hex(), width, color.WithAlpha(alpha).A)
	if len(dash) > 0 {
		parts := make([]string, len(dash))
		for i, v := range dash {
			parts[i] = fmt.Sprintf("%.1f", v)
		}
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	buf.WriteString("/>\n")
}

// writeMultiLine batches the glow segments of one pass into a single
// path. Glow modes emit tens of thousands of segments per render;
// per-segment elements would balloon the document.
func writeMultiLine(buf *bytes.Buffer, c canvas, o render.MultiLineOp) {
	if len(o.Lines) == 0 {
		return
	}
	var d strings.Builder
	for _, line := range o.Lines {
		for i, p := range line {
			x, y := c.pt(p)
			if i == 0 {
				fmt.Fprintf(&d, "M %.1f %.1f ", x, y)
				continue
			}
			fmt.Fprintf(&d, "L %.1f %.1f ", x, y)
		}
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f" stroke-linecap="round"/>`+"\n",
		d.String(), o.Color.Hex(), o.Width, o.Color.WithAlpha(o.Alpha).A)
}

func writeScatter(buf *bytes.Buffer, c canvas, o render.ScatterOp) {
	if len(o.Points) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g opacity="%.3f">`+"\n", o.Alpha)
	for _, p := range o.Points {
		x, y := c.pt(p.P)
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>`+"\n",
			x, y, markerRadius(p.Size), p.Color.Hex())
	}
	buf.WriteString("  </g>\n")
}

func writeText(buf *bytes.Buffer, c canvas, o render.TextOp, family string) {
	x, y := c.frac(o.X, o.Y)

	anchor := "middle"
	switch o.Align {
	case "left":
		anchor = "start"
	case "right":
		anchor = "end"
	}

	weight := "normal"
	switch o.Weight {
	case text.WeightBold:
		weight = "bold"
	case text.WeightLight:
		weight = "300"
	}

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d" font-weight="%s" text-anchor="%s" fill="%s" fill-opacity="%.3f">%s</text>`+"\n",
		x, y, family, o.Size, weight, anchor, o.Color.Hex(), o.Color.WithAlpha(o.Alpha).A, xmlEscaper.Replace(o.Text))
}

// fontFamily derives a fontconfig-resolvable family name from the
// resolved font files, falling back to the generic sans family.
func fontFamily(fonts text.FontSet) string {
	path := fonts.Regular
	if path == "" {
		path = fonts.Bold
	}
	if path == "" {
		return "sans-serif"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name, _, found := strings.Cut(base, "-"); found && name != "" {
		return name
	}
	return base
}
