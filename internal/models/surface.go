package models

import "math"

// Layer identifies one of the three stacked surfaces
type Layer int

const (
	Lower Layer = iota
	Central
	Upper
)

// Layers lists the surfaces in drawing order, top-most first
var Layers = []Layer{Upper, Central, Lower}

func (l Layer) String() string {
	switch l {
	case Lower:
		return "lower"
	case Central:
		return "central"
	case Upper:
		return "upper"
	default:
		return "unknown"
	}
}

// Range is a closed numeric interval along one axis
type Range struct {
	// Min is the lowest value of the interval
	Min float64

	// Max is the highest value of the interval
	Max float64
}

// Span returns the width of the range
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies strictly inside the range.
// When inclusive is set, the end points are accepted as well.
func (r Range) Contains(v float64, inclusive bool) bool {
	if math.IsNaN(v) {
		return false
	}
	if inclusive {
		return v >= r.Min && v <= r.Max
	}
	return v > r.Min && v < r.Max
}

// Clamp limits v to the range
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Bounds holds the user-selected slicing limits for every axis
type Bounds struct {
	X, Y, Z Range
}

// Extent holds the global min/max of every axis across all loaded surfaces.
// It fixes the axis scale so that re-slicing never changes the zoom.
type Extent struct {
	X, Y, Z Range
}

// Bounds returns slicing limits covering the whole extent
func (e Extent) Bounds() Bounds {
	return Bounds{X: e.X, Y: e.Y, Z: e.Z}
}

// Axis returns the range of the named axis ("x", "y" or "z"), or nil for
// any other name. The range is updated in place.
func (b *Bounds) Axis(axis string) *Range {
	switch axis {
	case "x", "X":
		return &b.X
	case "y", "Y":
		return &b.Y
	case "z", "Z":
		return &b.Z
	}
	return nil
}
