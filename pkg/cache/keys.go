package cache

import (
	"fmt"
	"strings"
)

// Keyer builds deterministic cache keys for geometry requests.
// Coordinates are truncated to four decimals (about 11m) so nearby
// re-requests of the same place hit the same entry.
type Keyer struct {
	prefix string
}

// NewKeyer creates a keyer. A non-empty prefix namespaces all keys,
// useful when several deployments share one Redis instance.
func NewKeyer(prefix string) *Keyer {
	return &Keyer{prefix: prefix}
}

// GraphKey is the cache key for a street network fetch.
func (k *Keyer) GraphKey(lat, lon, distance float64) string {
	return fmt.Sprintf("%sgraph_%.4f_%.4f_%.0f", k.prefix, lat, lon, distance)
}

// FeatureKey is the cache key for a feature layer fetch. tagKeys must
// already be sorted so the key is deterministic.
func (k *Keyer) FeatureKey(layer string, lat, lon, distance float64, tagKeys []string) string {
	return fmt.Sprintf("%s%s_%.4f_%.4f_%.0f_%s",
		k.prefix, layer, lat, lon, distance, strings.Join(tagKeys, "-"))
}
