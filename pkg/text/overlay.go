package text

import (
	"strings"

	"github.com/citymaps/cityposter/pkg/paper"
)

// Weight selects the font cut for an overlay item.
type Weight int

const (
	WeightBold Weight = iota
	WeightRegular
	WeightLight
)

// Position configures where the text block sits on the canvas, in
// 0-1 fractions measured from the bottom-left corner.
type Position struct {
	X         float64
	Y         float64
	Alignment string // "left", "center", or "right"

	ShowCoords  bool
	ShowCountry bool
}

// DefaultPosition returns the centered lower-third placement.
func DefaultPosition() Position {
	return Position{X: 0.5, Y: 0.14, Alignment: "center", ShowCoords: true, ShowCountry: true}
}

// Overlay describes one poster's text block.
type Overlay struct {
	City    string
	Country string
	Lat     float64
	Lon     float64

	// Personalization overrides. Empty strings keep the defaults.
	CustomCity    string
	CustomCountry string
	Subtitle      string
	CustomCoords  string
	CoordsFormat  CoordsFormat

	Color string // resolved text color, hex

	Paper    paper.Size
	Distance float64
	Position Position
}

// ItemKind distinguishes text items from the decorative rule.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemRule
)

// Item is one positioned element of the text block, in canvas
// fractions. Sizes are in points at the reference canvas scale.
type Item struct {
	Kind   ItemKind
	Text   string
	X, Y   float64
	X2     float64 // rule end, rules only
	Size   int
	Weight Weight
	Alpha  float64
	Align  string // "left", "center", "right"
	VAlign string // "baseline" or "bottom"
	Width  float64 // rule stroke width, rules only
}

// Layout computes the items of the text block, top to bottom: spaced
// city name, optional subtitle, decorative rule, optional country,
// optional coordinates, and the attribution corner. City name and
// attribution are always present.
func (o Overlay) Layout() []Item {
	pos := o.Position
	if pos.Alignment == "" {
		pos = DefaultPosition()
	}

	city := o.City
	if o.CustomCity != "" {
		city = o.CustomCity
	}
	country := o.Country
	if o.CustomCountry != "" {
		country = o.CustomCountry
	}

	sizeCity := ScaledFontSize(60, o.Paper, o.Distance, 16)
	sizeCountry := ScaledFontSize(22, o.Paper, o.Distance, 10)
	sizeCoords := ScaledFontSize(14, o.Paper, o.Distance, 8)
	sizeAttr := ScaledFontSize(8, o.Paper, o.Distance, 6)

	items := make([]Item, 0, 6)

	spaced := strings.Join(strings.Split(strings.ToUpper(city), ""), "  ")
	items = append(items, Item{
		Kind:   ItemText,
		Text:   spaced,
		X:      pos.X,
		Y:      pos.Y,
		Size:   int(float64(sizeCity) * NameScale(city)),
		Weight: WeightBold,
		Alpha:  1.0,
		Align:  pos.Alignment,
	})

	if o.Subtitle != "" {
		items = append(items, Item{
			Kind:   ItemText,
			Text:   strings.ToUpper(o.Subtitle),
			X:      pos.X,
			Y:      pos.Y - 0.025,
			Size:   int(float64(sizeCountry) * 0.8),
			Weight: WeightLight,
			Alpha:  0.8,
			Align:  pos.Alignment,
		})
	}

	scale := CombinedScale(o.Paper, o.Distance)
	ruleLen := 0.2 * scale
	var ruleLeft, ruleRight float64
	if pos.Alignment == "center" {
		ruleLeft = 0.5 - ruleLen/2
		ruleRight = 0.5 + ruleLen/2
	} else {
		ruleLeft = 0.1
		ruleRight = 0.1 + ruleLen
	}
	ruleWidth := 1.0 * scale
	if ruleWidth < 0.5 {
		ruleWidth = 0.5
	}
	items = append(items, Item{
		Kind:  ItemRule,
		X:     ruleLeft,
		X2:    ruleRight,
		Y:     pos.Y - 0.04,
		Alpha: 1.0,
		Width: ruleWidth,
	})

	if pos.ShowCountry {
		countryOffset := 0.04
		if o.Subtitle != "" {
			countryOffset = 0.025
		}
		items = append(items, Item{
			Kind:   ItemText,
			Text:   strings.ToUpper(country),
			X:      pos.X,
			Y:      pos.Y - 0.04 - countryOffset,
			Size:   sizeCountry,
			Weight: WeightLight,
			Alpha:  1.0,
			Align:  pos.Alignment,
		})
	}

	if pos.ShowCoords {
		coordsY := pos.Y - 0.04
		if pos.ShowCountry {
			coordsY = pos.Y - 0.07
		}
		if o.Subtitle != "" {
			coordsY -= 0.025
		}
		coords := o.CustomCoords
		if coords == "" {
			coords = FormatCoordinates(o.Lat, o.Lon, o.CoordsFormat)
		}
		items = append(items, Item{
			Kind:   ItemText,
			Text:   coords,
			X:      pos.X,
			Y:      coordsY,
			Size:   sizeCoords,
			Weight: WeightRegular,
			Alpha:  0.7,
			Align:  pos.Alignment,
		})
	}

	items = append(items, Item{
		Kind:   ItemText,
		Text:   "© OpenStreetMap contributors",
		X:      0.98,
		Y:      0.02,
		Size:   sizeAttr,
		Weight: WeightLight,
		Alpha:  0.5,
		Align:  "right",
		VAlign: "bottom",
	})

	return items
}
