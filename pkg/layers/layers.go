// Package layers defines the optional map detail layers, their OSM tag
// filters, and the zoom-based visibility defaults.
package layers

import "sort"

// Names lists the detail layers in a stable order. Each one is fetched
// and drawn only when enabled.
var Names = []string{
	"buildings",
	"paths",
	"landscape",
	"waterways",
	"railways",
	"hedges",
	"leisure",
	"amenities",
}

// TagFilter selects OSM features by tag. A nil value slice accepts any
// value for the key.
type TagFilter map[string][]string

// Keys returns the filter's tag keys sorted lexicographically, used for
// deterministic cache keys.
func (f TagFilter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tags maps each detail layer to its OSM tag filter.
var Tags = map[string]TagFilter{
	"buildings": {"building": nil},
	"paths":     {"highway": {"track", "path", "footway", "cycleway", "bridleway"}},
	"landscape": {
		"landuse": {"farmland", "meadow", "orchard", "vineyard", "forest"},
		"natural": {"wood", "scrub", "heath", "grassland"},
	},
	"waterways": {"waterway": {"stream", "river", "canal", "ditch", "drain"}},
	"railways":  {"railway": {"rail", "tram", "light_rail", "narrow_gauge"}},
	"hedges":    {"barrier": {"hedge", "fence", "wall"}},
	"leisure":   {"leisure": {"pitch", "playground", "garden", "sports_centre"}},
	"amenities": {"amenity": {"place_of_worship", "school", "cemetery"}},
}

// Visibility maps a layer name to whether it is drawn. Missing entries
// mean disabled.
type Visibility map[string]bool

// Enabled reports whether the named layer is on.
func (v Visibility) Enabled(name string) bool { return v[name] }

// Merge overlays explicit per-layer overrides onto v, returning a new
// map. Overrides always win over computed defaults.
func (v Visibility) Merge(overrides map[string]bool) Visibility {
	merged := make(Visibility, len(v)+len(overrides))
	for k, val := range v {
		merged[k] = val
	}
	for k, val := range overrides {
		merged[k] = val
	}
	return merged
}

// Zoom thresholds for the visibility bands, in meters.
const (
	allOnLimit   = 2000
	midBandLimit = 8000
)

// Defaults computes the layer visibility for a zoom radius. Close zoom
// enables everything, town zoom keeps the structurally useful layers,
// and wide zoom disables all detail layers. Pure in distance: the same
// radius always yields the same set.
func Defaults(distance float64) Visibility {
	v := make(Visibility, len(Names))
	for _, name := range Names {
		v[name] = false
	}

	switch {
	case distance <= allOnLimit:
		for _, name := range Names {
			v[name] = true
		}
	case distance <= midBandLimit:
		v["buildings"] = true
		v["waterways"] = true
		v["railways"] = true
		v["leisure"] = true
		v["amenities"] = true
	}
	return v
}
