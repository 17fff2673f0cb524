package text

import (
	"math"
	"testing"

	"github.com/citymaps/cityposter/pkg/paper"
)

func TestZoomScale(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"below minimum clamps", 100, 0.4},
		{"at minimum", 500, 0.4},
		{"control point", 2000, 0.6},
		{"midpoint interpolates", 3000, 0.675},
		{"reference", 15000, 1.0},
		{"above maximum clamps", 50000, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoomScale(tt.distance); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ZoomScale(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestZoomScaleMonotonic(t *testing.T) {
	prev := ZoomScale(0)
	for d := 100.0; d <= 20000; d += 100 {
		cur := ZoomScale(d)
		if cur < prev {
			t.Fatalf("ZoomScale decreased at %v: %v < %v", d, cur, prev)
		}
		prev = cur
	}
}

func TestScaledFontSize(t *testing.T) {
	// A4 at the 15km reference keeps the base size.
	if got := ScaledFontSize(60, paper.A4, 15000, 16); got != 60 {
		t.Errorf("reference = %d, want 60", got)
	}
	// A2 scales up by 1.4.
	if got := ScaledFontSize(60, paper.A2, 15000, 16); got != 84 {
		t.Errorf("A2 = %d, want 84", got)
	}
	// Tight zoom on small paper hits the floor.
	if got := ScaledFontSize(22, paper.A5, 500, 10); got != 10 {
		t.Errorf("floor = %d, want 10", got)
	}
}

func TestScaledFontSizeOrdering(t *testing.T) {
	// Larger paper never yields a smaller size at fixed distance.
	order := []paper.Size{paper.A5, paper.A4, paper.A3, paper.A2}
	for _, dist := range []float64{500, 2000, 8000, 15000} {
		prev := 0
		for _, size := range order {
			got := ScaledFontSize(60, size, dist, 16)
			if got < prev {
				t.Errorf("size decreased from %d to %d at %s/%v", prev, got, size, dist)
			}
			prev = got
		}
	}
}

func TestNameScale(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"Paris", 1.0},
		{"Düsseldorf", 1.0}, // ten runes, umlaut counted once
		{"Gelsenkirchen", 10.0 / 13.0},
		{"Llanfairpwllgwyngyll", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameScale(tt.name); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NameScale(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
