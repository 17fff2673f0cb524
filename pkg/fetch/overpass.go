package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/geom"
	"github.com/citymaps/cityposter/pkg/httputil"
	"github.com/citymaps/cityposter/pkg/layers"
)

// DefaultOverpassURL is the public Overpass API endpoint.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// Highway classes that are mapped but not usable ways; excluded from
// the street network query.
const excludedHighways = "proposed|construction|abandoned|platform|raceway"

// Overpass fetches geometry from an Overpass API endpoint.
type Overpass struct {
	endpoint string
	client   *http.Client
}

// OverpassOption configures an Overpass client.
type OverpassOption func(*Overpass)

// WithEndpoint points the client at a different Overpass instance.
func WithEndpoint(endpoint string) OverpassOption {
	return func(o *Overpass) { o.endpoint = endpoint }
}

// WithClient sets the HTTP client, mainly for tests.
func WithClient(client *http.Client) OverpassOption {
	return func(o *Overpass) { o.client = client }
}

// NewOverpass creates a client against the public endpoint unless
// overridden.
func NewOverpass(opts ...OverpassOption) *Overpass {
	o := &Overpass{endpoint: DefaultOverpassURL}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// overpassElement is one entry of an Overpass JSON response.
type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// bbox returns (south, west, north, east) for a square of half-side
// distance meters around center.
func bbox(center geom.LatLon, distance float64) (float64, float64, float64, float64) {
	dLat := distance / 111320.0
	dLon := distance / (111320.0 * math.Cos(center.Lat*math.Pi/180))
	return center.Lat - dLat, center.Lon - dLon, center.Lat + dLat, center.Lon + dLon
}

// FetchGraph queries every mapped way with a usable highway tag inside
// the bounding box and assembles the street network.
func (o *Overpass) FetchGraph(ctx context.Context, center geom.LatLon, distance float64) (*geom.Graph, error) {
	s, w, n, e := bbox(center, distance)
	query := fmt.Sprintf(
		"[out:json][timeout:180];way[\"highway\"][\"highway\"!~\"^(%s)$\"](%f,%f,%f,%f);(._;>;);out body;",
		excludedHighways, s, w, n, e)

	resp, err := o.run(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStreetNetwork, err, "failed to fetch street network")
	}

	coords := make(map[int64]geom.Point, len(resp.Elements))
	for _, el := range resp.Elements {
		if el.Type == "node" {
			coords[el.ID] = geom.Point{X: el.Lon, Y: el.Lat}
		}
	}

	g := geom.NewGraph()
	for _, el := range resp.Elements {
		if el.Type != "way" || len(el.Nodes) < 2 {
			continue
		}
		highway := el.Tags["highway"]
		for i := 0; i < len(el.Nodes)-1; i++ {
			from, to := el.Nodes[i], el.Nodes[i+1]
			pf, okF := coords[from]
			pt, okT := coords[to]
			if !okF || !okT {
				continue
			}
			g.AddNode(geom.Node{ID: from, X: pf.X, Y: pf.Y})
			g.AddNode(geom.Node{ID: to, X: pt.X, Y: pt.Y})
			g.AddEdge(geom.Edge{From: from, To: to, Highway: highway})
		}
	}

	if g.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeStreetNetwork, "no streets found in the requested area")
	}
	return g, nil
}

// FetchFeatures queries ways and nodes matching the tag filter.
// Closed ways become polygons, open ways lines, and tagged nodes
// points. An area with no matches yields nil, which callers treat as
// "skip this layer".
func (o *Overpass) FetchFeatures(ctx context.Context, center geom.LatLon, distance float64, filter layers.TagFilter) (*geom.Collection, error) {
	s, w, n, e := bbox(center, distance)

	var clauses strings.Builder
	for _, key := range filter.Keys() {
		selector := fmt.Sprintf("[\"%s\"]", key)
		if values := filter[key]; len(values) > 0 {
			selector = fmt.Sprintf("[\"%s\"~\"^(%s)$\"]", key, strings.Join(values, "|"))
		}
		fmt.Fprintf(&clauses, "way%s(%f,%f,%f,%f);", selector, s, w, n, e)
		fmt.Fprintf(&clauses, "node%s(%f,%f,%f,%f);", selector, s, w, n, e)
	}
	query := fmt.Sprintf("[out:json][timeout:180];(%s);(._;>;);out body;", clauses.String())

	resp, err := o.run(ctx, query)
	if err != nil {
		return nil, err
	}

	coords := make(map[int64]geom.Point, len(resp.Elements))
	for _, el := range resp.Elements {
		if el.Type == "node" {
			coords[el.ID] = geom.Point{X: el.Lon, Y: el.Lat}
		}
	}

	var features []geom.Feature
	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			if matchesFilter(el.Tags, filter) {
				features = append(features, geom.Feature{
					Type:  geom.TypePoint,
					Point: geom.Point{X: el.Lon, Y: el.Lat},
					Tags:  el.Tags,
				})
			}
		case "way":
			line := make(geom.Line, 0, len(el.Nodes))
			for _, id := range el.Nodes {
				if p, ok := coords[id]; ok {
					line = append(line, p)
				}
			}
			if len(line) < 2 {
				continue
			}
			if len(line) >= 4 && line[0] == line[len(line)-1] {
				features = append(features, geom.Feature{
					Type:    geom.TypePolygon,
					Polygon: geom.Polygon{Exterior: line},
					Tags:    el.Tags,
				})
			} else {
				features = append(features, geom.Feature{
					Type: geom.TypeLine,
					Line: line,
					Tags: el.Tags,
				})
			}
		}
	}

	if len(features) == 0 {
		return nil, nil
	}
	return &geom.Collection{Features: features}, nil
}

// matchesFilter reports whether tags satisfy at least one filter
// entry. The recursion in the query pulls in untagged member nodes;
// those are geometry, not features.
func matchesFilter(tags map[string]string, filter layers.TagFilter) bool {
	if len(tags) == 0 {
		return false
	}
	for key, values := range filter {
		v, ok := tags[key]
		if !ok {
			continue
		}
		if len(values) == 0 || slices.Contains(values, v) {
			return true
		}
	}
	return false
}

// run posts the query with retry on transient failures.
func (o *Overpass) run(ctx context.Context, query string) (*overpassResponse, error) {
	var resp overpassResponse
	err := httputil.Retry(ctx, 3, 2*time.Second, func() error {
		req, err := http.NewRequest(http.MethodPost, o.endpoint,
			strings.NewReader(url.Values{"data": {query}}.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		body, err := httputil.Do(ctx, o.client, req)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ensure Overpass implements Source.
var _ Source = (*Overpass)(nil)
