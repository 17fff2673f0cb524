// Package text computes the typography for the poster overlay: font
// scaling for paper size and zoom, coordinate formatting, font
// resolution, and the layout of the text block itself.
package text

import (
	"github.com/citymaps/cityposter/pkg/paper"
)

// paperScale maps paper sizes to font scale factors, A4 being the
// reference.
var paperScale = map[paper.Size]float64{
	paper.A2: 1.4,
	paper.A3: 1.2,
	paper.A4: 1.0,
	paper.A5: 0.7,
}

// zoomPoints are (distance meters, scale factor) control points,
// interpolated linearly. 15km+ is the reference.
var zoomPoints = [][2]float64{
	{500, 0.4},
	{1000, 0.5},
	{2000, 0.6},
	{4000, 0.75},
	{8000, 0.9},
	{15000, 1.0},
}

// PaperScale returns the font scale factor for a paper size. Unknown
// sizes scale like A4.
func PaperScale(size paper.Size) float64 {
	if f, ok := paperScale[size]; ok {
		return f
	}
	return 1.0
}

// ZoomScale returns the font scale factor for a zoom radius,
// interpolating between the control points and clamping outside them.
func ZoomScale(distance float64) float64 {
	if distance <= zoomPoints[0][0] {
		return zoomPoints[0][1]
	}
	last := zoomPoints[len(zoomPoints)-1]
	if distance >= last[0] {
		return last[1]
	}
	for i := 0; i < len(zoomPoints)-1; i++ {
		d0, f0 := zoomPoints[i][0], zoomPoints[i][1]
		d1, f1 := zoomPoints[i+1][0], zoomPoints[i+1][1]
		if distance >= d0 && distance < d1 {
			ratio := (distance - d0) / (d1 - d0)
			return f0 + ratio*(f1-f0)
		}
	}
	return 1.0
}

// CombinedScale multiplies the paper and zoom factors.
func CombinedScale(size paper.Size, distance float64) float64 {
	return PaperScale(size) * ZoomScale(distance)
}

// ScaledFontSize scales base by the combined paper/zoom factor,
// truncates to an int, and never returns less than min.
func ScaledFontSize(base float64, size paper.Size, distance float64, min int) int {
	scaled := int(base * CombinedScale(size, distance))
	if scaled < min {
		return min
	}
	return scaled
}

// NameScale shrinks long city names so they fit the poster width.
// Names up to ten characters keep full size; longer names scale down
// proportionally, floored at half size.
func NameScale(name string) float64 {
	n := len([]rune(name))
	if n <= 10 {
		return 1.0
	}
	scale := 10.0 / float64(n)
	if scale < 0.5 {
		return 0.5
	}
	return scale
}
