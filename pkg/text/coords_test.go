package text

import "testing"

func TestFormatCoordinates(t *testing.T) {
	lat, lon := 48.8566, 2.3522

	tests := []struct {
		name   string
		format CoordsFormat
		want   string
	}{
		{"default", FormatDefault, "48.8566° N / 2.3522° E"},
		{"decimal", FormatDecimal, "48.8566, 2.3522"},
		{"compact", FormatCompact, "48.9°N / 2.4°E"},
		{"dms", FormatDMS, "48°51'N / 2°21'E"},
		{"unknown falls back", CoordsFormat("fancy"), "48.8566° N / 2.3522° E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCoordinates(lat, lon, tt.format); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCoordinatesSouthWest(t *testing.T) {
	got := FormatCoordinates(-33.8688, -70.6693, FormatDefault)
	want := "33.8688° S / 70.6693° W"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSliderRoundTrip(t *testing.T) {
	x, y := SliderToAxes(50, 14)
	if x != 0.5 || y != 0.14 {
		t.Errorf("SliderToAxes = %v, %v", x, y)
	}
	sx, sy := AxesToSlider(x, y)
	if sx != 50 || sy != 14 {
		t.Errorf("AxesToSlider = %d, %d", sx, sy)
	}
}

func TestPreviewBoxClamped(t *testing.T) {
	b := PreviewBox(0.95, 0.05, 0.2, 0.15)
	if b.Right != 1 || b.Bottom != 0 {
		t.Errorf("box not clamped: %+v", b)
	}
	if b.Width <= 0 || b.Height <= 0 {
		t.Errorf("degenerate box: %+v", b)
	}
}
