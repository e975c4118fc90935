package section

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"strataslice/internal/models"
	"strataslice/pkg/grid"
)

// Slice is one layer after masking. X, Y and Z are masked independently
// against their own axis bounds; a cell is drawn only when all three are set.
type Slice struct {
	Layer models.Layer
	X     *mat.Dense
	Y     *mat.Dense
	Z     *mat.Dense

	// Visible is the number of cells with X, Y and Z all in range
	Visible int
}

// IsVisible reports whether cell (i, j) survives slicing on every axis
func (sl Slice) IsVisible(i, j int) bool {
	return !math.IsNaN(sl.X.At(i, j)) && !math.IsNaN(sl.Y.At(i, j)) && !math.IsNaN(sl.Z.At(i, j))
}

// Slice masks every layer against b and returns them in drawing order
// (upper, central, lower).
func (s *Section) Slice(b models.Bounds) []Slice {
	mask := grid.Mask
	if s.inclusive {
		mask = grid.MaskInclusive
	}

	x := mask(s.x, b.X.Min, b.X.Max)
	y := mask(s.y, b.Y.Min, b.Y.Max)

	slices := make([]Slice, 0, len(models.Layers))
	for _, l := range models.Layers {
		sl := Slice{
			Layer: l,
			X:     x,
			Y:     y,
			Z:     mask(s.layers[l], b.Z.Min, b.Z.Max),
		}

		rows, cols := sl.Z.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if sl.IsVisible(i, j) {
					sl.Visible++
				}
			}
		}
		slices = append(slices, sl)
	}

	s.logger.Debug("sliced section",
		zap.Float64s("x", []float64{b.X.Min, b.X.Max}),
		zap.Float64s("y", []float64{b.Y.Min, b.Y.Max}),
		zap.Float64s("z", []float64{b.Z.Min, b.Z.Max}))

	return slices
}
