package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ParseHex parses #RGB, #RRGGBB, or #RRGGBBAA notation. Theme files
// occasionally carry an alpha byte for translucent accents.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	parse := func(part string) (float64, error) {
		v, err := strconv.ParseUint(part, 16, 8)
		return float64(v) / 255, err
	}

	r, errR := parse(hex[0:2])
	g, errG := parse(hex[2:4])
	b, errB := parse(hex[4:6])
	if errR != nil || errG != nil || errB != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	a := 1.0
	if len(hex) == 8 {
		var err error
		if a, err = parse(hex[6:8]); err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

// HexOr parses s, falling back to def when s is empty or malformed.
// Theme colors degrade rather than fail a render.
func HexOr(s, def string) Color {
	if c, err := ParseHex(s); err == nil {
		return c
	}
	c, err := ParseHex(def)
	if err != nil {
		return Color{A: 1}
	}
	return c
}

// WithAlpha returns the color with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Hex renders the color as #RRGGBB, dropping alpha.
func (c Color) Hex() string {
	clamp := func(v float64) int {
		n := int(v*255 + 0.5)
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return n
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(c.R), clamp(c.G), clamp(c.B))
}
