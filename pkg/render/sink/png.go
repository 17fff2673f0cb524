package sink

import (
	"bytes"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/render"
	"github.com/citymaps/cityposter/pkg/text"
)

// RenderPNG rasterizes the figure at its DPI.
func RenderPNG(fig *render.Figure) ([]byte, error) {
	c := newCanvas(fig)
	pxW, pxH := fig.PixelSize()
	if pxW <= 0 || pxH <= 0 {
		return nil, errors.New(errors.ErrCodeInternal, "figure has no raster size")
	}

	// Point to pixel factor. Canvas math stays in points; only the
	// context works in pixels.
	k := float64(fig.DPI) / 72

	dc := gg.NewContext(pxW, pxH)
	dc.SetColor(toNRGBA(fig.Background))
	dc.Clear()

	faces := newFaceCache(fig.Fonts, fig.DPI)

	for _, op := range fig.Ops() {
		switch o := op.(type) {
		case render.PolygonOp:
			drawPolygon(dc, c, k, o)
		case render.LineOp:
			drawLine(dc, c, k, o.Line, o.Color, o.Width, o.Alpha, o.Dash)
		case render.MultiLineOp:
			for _, line := range o.Lines {
				drawLine(dc, c, k, line, o.Color, o.Width, o.Alpha, nil)
			}
		case render.ScatterOp:
			for _, p := range o.Points {
				x, y := c.pt(p.P)
				dc.SetColor(toNRGBA(p.Color.WithAlpha(o.Alpha)))
				dc.DrawCircle(x*k, y*k, markerRadius(p.Size)*k)
				dc.Fill()
			}
		case render.TextOp:
			drawText(dc, c, k, o, faces)
		case render.RuleOp:
			x1, y := c.frac(o.X1, o.Y)
			x2, _ := c.frac(o.X2, o.Y)
			dc.SetColor(toNRGBA(o.Color))
			dc.SetLineWidth(o.Width * k)
			dc.DrawLine(x1*k, y*k, x2*k, y*k)
			dc.Stroke()
		case render.VGradientOp:
			drawVGradient(dc, c, k, o)
		case render.VignetteOp:
			drawVignette(dc, c, k, o)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

func drawPolygon(dc *gg.Context, c canvas, k float64, o render.PolygonOp) {
	dc.NewSubPath()
	for i, p := range o.Poly.Exterior {
		x, y := c.pt(p)
		if i == 0 {
			dc.MoveTo(x*k, y*k)
			continue
		}
		dc.LineTo(x*k, y*k)
	}
	dc.ClosePath()
	for _, hole := range o.Poly.Holes {
		dc.NewSubPath()
		for i, p := range hole {
			x, y := c.pt(p)
			if i == 0 {
				dc.MoveTo(x*k, y*k)
				continue
			}
			dc.LineTo(x*k, y*k)
		}
		dc.ClosePath()
	}

	dc.SetFillRuleEvenOdd()
	if o.Fill != nil && o.Stroke != nil {
		dc.SetColor(toNRGBA(o.Fill.WithAlpha(o.Alpha)))
		dc.FillPreserve()
		dc.SetColor(toNRGBA(o.Stroke.WithAlpha(o.Alpha)))
		dc.SetLineWidth(o.StrokeWidth * k)
		dc.Stroke()
		return
	}
	if o.Fill != nil {
		dc.SetColor(toNRGBA(o.Fill.WithAlpha(o.Alpha)))
		dc.Fill()
		return
	}
	if o.Stroke != nil {
		dc.SetColor(toNRGBA(o.Stroke.WithAlpha(o.Alpha)))
		dc.SetLineWidth(o.StrokeWidth * k)
		dc.Stroke()
	}
}

func drawLine(dc *gg.Context, c canvas, k float64, line geom.Line, col render.Color, width, alpha float64, dash []float64) {
	if len(line) < 2 {
		return
	}
	if len(dash) > 0 {
		scaled := make([]float64, len(dash))
		for i, v := range dash {
			scaled[i] = v * k
		}
		dc.SetDash(scaled...)
	}
	for i, p := range line {
		x, y := c.pt(p)
		if i == 0 {
			dc.MoveTo(x*k, y*k)
			continue
		}
		dc.LineTo(x*k, y*k)
	}
	dc.SetColor(toNRGBA(col.WithAlpha(alpha)))
	dc.SetLineWidth(width * k)
	dc.SetLineCapRound()
	dc.Stroke()
	if len(dash) > 0 {
		dc.SetDash()
	}
}

func drawText(dc *gg.Context, c canvas, k float64, o render.TextOp, faces *faceCache) {
	dc.SetFontFace(faces.face(o.Weight, o.Size))
	dc.SetColor(toNRGBA(o.Color.WithAlpha(o.Alpha)))

	x, y := c.frac(o.X, o.Y)
	ax := 0.5
	switch o.Align {
	case "left":
		ax = 0
	case "right":
		ax = 1
	}
	// The anchor baseline sits at y for both baseline and bottom
	// alignment; descenders hanging below the attribution corner are
	// acceptable.
	dc.DrawStringAnchored(o.Text, x*k, y*k, ax, 0)
}

func drawVGradient(dc *gg.Context, c canvas, k float64, o render.VGradientOp) {
	_, yTop := c.frac(0, o.Y1)
	_, yBottom := c.frac(0, o.Y0)

	grad := gg.NewLinearGradient(0, yTop*k, 0, yBottom*k)
	const stops = 8
	for s := 0; s <= stops; s++ {
		t := float64(s) / stops
		// t runs from the Y1 edge down to Y0.
		alpha := gradientAlpha(1-t, o.A0, o.A1, o.Exponent)
		grad.AddColorStop(t, toNRGBA(o.Color.WithAlpha(alpha)))
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, yTop*k, c.w*k, (yBottom-yTop)*k)
	dc.Fill()
}

func drawVignette(dc *gg.Context, c canvas, k float64, o render.VignetteOp) {
	cx, cy := c.w*k/2, c.h*k/2
	r := vignetteRadius(c.w*k, c.h*k)

	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	const stops = 8
	for s := 0; s <= stops; s++ {
		d := float64(s) / stops
		grad.AddColorStop(d, color.NRGBA{A: uint8(vignetteAlpha(d, o.Intensity)*255 + 0.5)})
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, c.w*k, c.h*k)
	dc.Fill()
}

func toNRGBA(c render.Color) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// faceCache parses each font file once and builds sized faces on
// demand. One render uses a handful of size/weight pairs.
type faceCache struct {
	fonts map[text.Weight]*truetype.Font
	dpi   int
	faces map[faceKey]font.Face
}

type faceKey struct {
	weight text.Weight
	size   int
}

func newFaceCache(fonts text.FontSet, dpi int) *faceCache {
	fc := &faceCache{
		fonts: make(map[text.Weight]*truetype.Font),
		dpi:   dpi,
		faces: make(map[faceKey]font.Face),
	}
	load := func(w text.Weight, path string) {
		if path == "" {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return
		}
		fc.fonts[w] = f
	}
	load(text.WeightBold, fonts.Bold)
	load(text.WeightRegular, fonts.Regular)
	load(text.WeightLight, fonts.Light)
	return fc
}

// face returns a sized face for the weight, degrading to the regular
// cut and finally the built-in bitmap face.
func (fc *faceCache) face(w text.Weight, size int) font.Face {
	key := faceKey{w, size}
	if f, ok := fc.faces[key]; ok {
		return f
	}

	ttf := fc.fonts[w]
	if ttf == nil {
		ttf = fc.fonts[text.WeightRegular]
	}
	if ttf == nil {
		return basicfont.Face7x13
	}

	f := truetype.NewFace(ttf, &truetype.Options{
		Size: float64(size),
		DPI:  float64(fc.dpi),
	})
	fc.faces[key] = f
	return f
}
