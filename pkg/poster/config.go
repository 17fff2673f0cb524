package poster

import (
	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/paper"
	"github.com/citymaps/cityposter/pkg/text"
)

// Render bounds and defaults.
const (
	DefaultDistance = 8000.0
	MaxDistance     = 50000.0

	// DPI presets: previews render fast, print output renders sharp.
	PreviewDPI = 150
	PrintDPI   = 600
	DefaultDPI = 300
)

// RenderConfig is the immutable parameter set for one poster render.
type RenderConfig struct {
	Lat     float64
	Lon     float64
	City    string
	Country string

	// Theme selects a named theme; CustomColors, when non-empty,
	// overlays the named theme with explicit key/color pairs.
	Theme        string
	CustomColors map[string]string

	Distance float64
	Paper    paper.Size
	DPI      int

	// Layers overrides the zoom-based visibility defaults per layer.
	Layers map[string]bool

	Position text.Position

	// Personalization overrides. Empty values keep the computed text.
	CustomCity    string
	CustomCountry string
	Subtitle      string
	CustomCoords  string
	CoordsFormat  text.CoordsFormat
	TextColor     string
}

// normalized returns a copy with defaults applied, or an error when a
// value is out of bounds. Distance is checked before any fetch so an
// oversized request never reaches the network.
func (c RenderConfig) normalized() (RenderConfig, error) {
	if c.Distance == 0 {
		c.Distance = DefaultDistance
	}
	if c.Distance < 0 {
		return c, errors.New(errors.ErrCodeInvalidDistance, "distance must be positive, got %.0f", c.Distance)
	}
	if c.Distance > MaxDistance {
		return c, errors.New(errors.ErrCodeDistanceExceeded,
			"distance %.0fm exceeds the maximum of %.0fm", c.Distance, MaxDistance)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return c, errors.New(errors.ErrCodeInvalidCoords, "coordinates out of range: %.4f, %.4f", c.Lat, c.Lon)
	}

	if !c.Paper.Valid() {
		c.Paper = paper.Default
	}
	if c.DPI <= 0 {
		c.DPI = DefaultDPI
	}
	if c.Position.Alignment == "" {
		c.Position = text.DefaultPosition()
	}
	return c, nil
}
