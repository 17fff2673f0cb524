package geom

// Node is a street-graph vertex.
type Node struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge is a street segment between two nodes. Geometry, when present,
// carries the full way shape; otherwise the edge is the straight line
// between its endpoints. Highway is the OSM highway class of the way.
type Edge struct {
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Highway  string `json:"highway,omitempty"`
	Geometry Line   `json:"geometry,omitempty"`
}

// Graph is the street network for one render.
type Graph struct {
	Nodes map[int64]Node `json:"nodes"`
	Edges []Edge         `json:"edges"`
}

// NewGraph returns an empty graph ready for insertion.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[int64]Node)}
}

// AddNode inserts or replaces a node.
func (g *Graph) AddNode(n Node) { g.Nodes[n.ID] = n }

// AddEdge appends an edge. Unknown endpoints are tolerated; Line
// falls back to whatever geometry the edge carries.
func (g *Graph) AddEdge(e Edge) { g.Edges = append(g.Edges, e) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Line returns the drawable geometry of e: the explicit way shape if
// present, else the straight segment between the endpoint nodes.
func (g *Graph) Line(e Edge) Line {
	if len(e.Geometry) >= 2 {
		return e.Geometry
	}
	from, okF := g.Nodes[e.From]
	to, okT := g.Nodes[e.To]
	if !okF || !okT {
		return nil
	}
	return Line{{from.X, from.Y}, {to.X, to.Y}}
}

// BBox returns the bounding box over all nodes.
func (g *Graph) BBox() BBox {
	var b BBox
	first := true
	for _, n := range g.Nodes {
		p := Point{n.X, n.Y}
		if first {
			b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			first = false
			continue
		}
		b = b.Expand(p)
	}
	return b
}

// Degrees returns the number of incident edges per node. Both
// directions of a two-way street count, matching how intersections
// accumulate degree in the raw OSM graph.
func (g *Graph) Degrees() map[int64]int {
	deg := make(map[int64]int, len(g.Nodes))
	for _, e := range g.Edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}
