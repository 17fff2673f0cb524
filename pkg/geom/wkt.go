package geom

import (
	"fmt"
	"strings"
)

// WKT returns the well-known-text representation of the polygon.
// The output is deterministic for identical geometry, which makes it
// a stable identity for content-derived seeding.
func (p Polygon) WKT() string {
	var b strings.Builder
	b.WriteString("POLYGON (")
	writeRing(&b, p.Exterior)
	for _, h := range p.Holes {
		b.WriteString(", ")
		writeRing(&b, h)
	}
	b.WriteString(")")
	return b.String()
}

func writeRing(b *strings.Builder, ring Line) {
	b.WriteString("(")
	for i, pt := range ring {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%g %g", pt.X, pt.Y)
	}
	// WKT rings are closed; repeat the first point if the source ring
	// is open.
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		fmt.Fprintf(b, ", %g %g", ring[0].X, ring[0].Y)
	}
	b.WriteString(")")
}
