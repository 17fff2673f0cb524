package text

import "fmt"

// CoordsFormat selects how the coordinate line is rendered.
type CoordsFormat string

const (
	FormatDefault CoordsFormat = "default"
	FormatDecimal CoordsFormat = "decimal"
	FormatCompact CoordsFormat = "compact"
	FormatDMS     CoordsFormat = "dms"
)

// FormatCoordinates renders lat/lon as a human-readable string with
// hemisphere indicators. Unknown formats fall back to the default
// style.
func FormatCoordinates(lat, lon float64, format CoordsFormat) string {
	latHemi, lonHemi := "N", "E"
	if lat < 0 {
		latHemi = "S"
	}
	if lon < 0 {
		lonHemi = "W"
	}
	latAbs, lonAbs := abs(lat), abs(lon)

	switch format {
	case FormatDecimal:
		return fmt.Sprintf("%.4f, %.4f", latAbs, lonAbs)
	case FormatCompact:
		return fmt.Sprintf("%.1f°%s / %.1f°%s", latAbs, latHemi, lonAbs, lonHemi)
	case FormatDMS:
		latDeg := int(latAbs)
		latMin := int((latAbs - float64(latDeg)) * 60)
		lonDeg := int(lonAbs)
		lonMin := int((lonAbs - float64(lonDeg)) * 60)
		return fmt.Sprintf("%d°%d'%s / %d°%d'%s", latDeg, latMin, latHemi, lonDeg, lonMin, lonHemi)
	default:
		return fmt.Sprintf("%.4f° %s / %.4f° %s", latAbs, latHemi, lonAbs, lonHemi)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// SliderToAxes converts 0-100 slider positions, the range front ends
// typically expose, to 0-1 canvas fractions.
func SliderToAxes(sliderX, sliderY int) (float64, float64) {
	return float64(sliderX) / 100.0, float64(sliderY) / 100.0
}

// AxesToSlider is the inverse of SliderToAxes.
func AxesToSlider(x, y float64) (int, int) {
	return int(x * 100), int(y * 100)
}

// Box is a rectangle in canvas fractions, used by front ends to
// preview where the text block will land.
type Box struct {
	Left, Right, Top, Bottom float64
	Width, Height            float64
}

// PreviewBox returns the clamped rectangle centered at (x, y).
func PreviewBox(x, y, width, height float64) Box {
	left := max(0, x-width/2)
	right := min(1, x+width/2)
	top := min(1, y+height/2)
	bottom := max(0, y-height/2)
	return Box{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
		Width:  right - left,
		Height: top - bottom,
	}
}
