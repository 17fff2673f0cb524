// Package paper defines the supported poster paper formats and their
// physical dimensions.
package paper

import (
	"sort"

	"github.com/citymaps/cityposter/pkg/errors"
)

// Size is an ISO 216 paper format identifier.
type Size string

// Supported paper sizes, portrait orientation.
const (
	A2 Size = "A2"
	A3 Size = "A3"
	A4 Size = "A4"
	A5 Size = "A5"
)

// Default is the reference paper size.
const Default = A4

// dimensions holds physical size in inches (width, height).
var dimensions = map[Size][2]float64{
	A2: {16.54, 23.39}, // 420 x 594 mm
	A3: {11.69, 16.54}, // 297 x 420 mm
	A4: {8.27, 11.69},  // 210 x 297 mm
	A5: {5.83, 8.27},   // 148 x 210 mm
}

// Inches returns the physical width and height of s in inches.
// Unknown sizes fall back to A4.
func (s Size) Inches() (w, h float64) {
	d, ok := dimensions[s]
	if !ok {
		d = dimensions[A4]
	}
	return d[0], d[1]
}

// Aspect returns width/height of the paper.
func (s Size) Aspect() float64 {
	w, h := s.Inches()
	return w / h
}

// Valid reports whether s is a supported size.
func (s Size) Valid() bool {
	_, ok := dimensions[s]
	return ok
}

// Parse validates a paper size string. Unknown values return an
// INVALID_PAPER_SIZE error naming the supported set.
func Parse(s string) (Size, error) {
	size := Size(s)
	if !size.Valid() {
		return "", errors.New(errors.ErrCodeInvalidPaperSize,
			"invalid paper size: %q (must be one of: %v)", s, Sizes())
	}
	return size, nil
}

// Sizes returns the supported sizes sorted lexicographically.
func Sizes() []Size {
	out := make([]Size, 0, len(dimensions))
	for s := range dimensions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
