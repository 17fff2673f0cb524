// Package theme defines poster themes: flat mappings from semantic
// style keys to colors, flags, and render-mode parameters, loaded from
// JSON files with a built-in fallback.
package theme

import "encoding/json"

// Mode selects one of the mutually exclusive render pipelines.
type Mode string

const (
	ModeStandard    Mode = "standard"
	ModeNightLights Mode = "night_lights"
	ModeHolonight   Mode = "holonight"
	ModeKandincity  Mode = "kandincity"
)

// RequiredKeys is the minimal set of color keys every resolved theme
// must carry. The built-in default supplies them when a loaded theme
// does not.
var RequiredKeys = []string{
	"bg",
	"text",
	"gradient_color",
	"water",
	"parks",
	"road_motorway",
	"road_primary",
	"road_secondary",
	"road_tertiary",
	"road_residential",
	"road_default",
}

// fallbacks declares the key substitution chain used by Color when an
// optional key is missing from the theme.
var fallbacks = map[string]string{
	"waterways":      "water",
	"leisure":        "parks",
	"hedges":         "parks",
	"farmland":       "parks",
	"meadow":         "parks",
	"forest":         "parks",
	"paths":          "road_residential",
	"railways":       "text",
	"buildings":      "text",
	"buildings_fill": "bg",
	"amenities":      "buildings_fill",
	"amenities_edge": "buildings",
}

// Theme is a named style mapping. Values are color strings, numbers,
// booleans, or lists depending on the key; accessors interpret them
// leniently so a malformed value degrades instead of failing a render.
type Theme struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Values      map[string]any `json:"-"`
}

// UnmarshalJSON reads the whole object into Values and lifts the
// name/description metadata keys.
func (t *Theme) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Values = raw
	t.Name, _ = raw["name"].(string)
	t.Description, _ = raw["description"].(string)
	return nil
}

// MarshalJSON writes the flat value map.
func (t Theme) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Values)
}

// Mode returns the render mode selected by the theme. Absent or
// unrecognized values select the standard pipeline.
func (t Theme) Mode() Mode {
	s, _ := t.Values["mode"].(string)
	switch Mode(s) {
	case ModeNightLights, ModeHolonight, ModeKandincity:
		return Mode(s)
	default:
		return ModeStandard
	}
}

// Color resolves key to a color string, walking the declared fallback
// chain for missing optional keys. When nothing in the chain resolves
// it returns def.
func (t Theme) Color(key, def string) string {
	seen := 0
	for key != "" && seen < 4 {
		if s, ok := t.Values[key].(string); ok && s != "" {
			return s
		}
		key = fallbacks[key]
		seen++
	}
	return def
}

// String returns the raw string value of key, or def when absent.
// Unlike Color it does not walk the fallback chain.
func (t Theme) String(key, def string) string {
	if s, ok := t.Values[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Float returns a numeric theme value, tolerating JSON's float-only
// numbers, or def when absent or non-numeric.
func (t Theme) Float(key string, def float64) float64 {
	switch v := t.Values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// Int returns a numeric theme value rounded down to an int.
func (t Theme) Int(key string, def int) int {
	switch v := t.Values[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// Bool returns a boolean theme value, or def when absent.
func (t Theme) Bool(key string, def bool) bool {
	if b, ok := t.Values[key].(bool); ok {
		return b
	}
	return def
}

// Strings returns a list-of-strings theme value (e.g. a glow or block
// palette), or def when absent or malformed.
func (t Theme) Strings(key string, def []string) []string {
	raw, ok := t.Values[key].([]any)
	if !ok {
		return def
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return def
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Floats returns a list-of-numbers theme value (e.g. palette weights),
// or nil when absent or malformed.
func (t Theme) Floats(key string) []float64 {
	raw, ok := t.Values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return out
}

// Clone returns a deep-enough copy: the value map is copied so the
// clone can be mutated without observing changes in the original.
// List values are shared; callers treat them as immutable.
func (t Theme) Clone() Theme {
	values := make(map[string]any, len(t.Values))
	for k, v := range t.Values {
		values[k] = v
	}
	return Theme{Name: t.Name, Description: t.Description, Values: values}
}
