package render

import "github.com/citymaps/cityposter/pkg/theme"

// roadClass maps an OSM highway value to its theme color key and line
// width in points.
type roadClass struct {
	colorKey string
	width    float64
}

var roadHierarchy = map[string]roadClass{
	"motorway":      {"road_motorway", 1.2},
	"motorway_link": {"road_motorway", 1.2},
	"trunk":         {"road_primary", 1.0},
	"primary":       {"road_primary", 1.0},
	"secondary":     {"road_secondary", 0.8},
	"tertiary":      {"road_tertiary", 0.6},
	"residential":   {"road_residential", 0.4},
	"living_street": {"road_residential", 0.4},
	"unclassified":  {"road_default", 0.4},
}

// roadStyle resolves the color and width for a highway tag. Unknown
// classes draw like minor roads.
func roadStyle(t theme.Theme, highway string) (Color, float64) {
	class, ok := roadHierarchy[highway]
	if !ok {
		class = roadClass{"road_default", 0.4}
	}
	return HexOr(t.Color(class.colorKey, "#CCCCCC"), "#CCCCCC"), class.width
}

// Road tiers used by the glow modes.
const (
	tierMajor = iota
	tierSecondary
	tierMinor
)

// roadTier buckets a highway tag into major, secondary, or minor.
func roadTier(highway string) int {
	switch highway {
	case "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link":
		return tierMajor
	case "secondary", "secondary_link", "tertiary", "tertiary_link":
		return tierSecondary
	default:
		return tierMinor
	}
}
