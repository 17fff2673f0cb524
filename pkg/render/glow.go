package render

import (
	"math"

	"github.com/citymaps/cityposter/pkg/geom"
)

// addGlow layers the night-lights bloom over a set of segments: wide
// soft outer passes, a mid pass, a bright core, and an ivory hot
// center.
func addGlow(fig *Figure, lines []geom.Line, color Color, baseWidth float64, numLayers int, maxAlpha, zorder float64) {
	if len(lines) == 0 {
		return
	}

	for i := numLayers; i >= 1; i-- {
		width := baseWidth * (1 + math.Pow(float64(i-1), 1.2)*0.5)
		t := float64(numLayers-i) / float64(numLayers)
		alpha := maxAlpha * math.Exp(-3*(1-t)*(1-t)) * 0.4
		fig.Add(MultiLineOp{Lines: lines, Color: color, Width: width, Alpha: alpha, ZOrder: zorder})
	}

	fig.Add(
		MultiLineOp{Lines: lines, Color: color, Width: baseWidth * 0.8, Alpha: maxAlpha * 0.7, ZOrder: zorder + 1},
		MultiLineOp{Lines: lines, Color: color, Width: baseWidth * 0.4, Alpha: maxAlpha * 0.9, ZOrder: zorder + 2},
		MultiLineOp{Lines: lines, Color: HexOr("#FFFFF0", "#FFFFF0"), Width: baseWidth * 0.15, Alpha: maxAlpha, ZOrder: zorder + 3},
	)
}

// addHolonightGlow layers the harder neon bloom: steeper falloff, a
// tinted bright core, and a pure white center.
func addHolonightGlow(fig *Figure, lines []geom.Line, color, innerColor Color, baseWidth float64, numLayers int, maxAlpha, falloff, zorder float64) {
	if len(lines) == 0 {
		return
	}

	for i := numLayers; i >= 1; i-- {
		width := baseWidth * (1 + math.Pow(float64(i-1), falloff)*0.6)
		t := float64(numLayers-i) / float64(numLayers)
		alpha := maxAlpha * math.Exp(-4*(1-t)*(1-t)) * 0.35
		fig.Add(MultiLineOp{Lines: lines, Color: color, Width: width, Alpha: alpha, ZOrder: zorder})
	}

	fig.Add(
		MultiLineOp{Lines: lines, Color: color, Width: baseWidth * 0.9, Alpha: maxAlpha * 0.75, ZOrder: zorder + 1},
		MultiLineOp{Lines: lines, Color: innerColor, Width: baseWidth * 0.5, Alpha: maxAlpha * 0.85, ZOrder: zorder + 2},
		MultiLineOp{Lines: lines, Color: HexOr("#FFFFFF", "#FFFFFF"), Width: baseWidth * 0.15, Alpha: maxAlpha, ZOrder: zorder + 3},
	)
}
