package section

import (
	"errors"
	"fmt"
	"math"

	"strataslice/internal/models"
)

// ErrInvalidAxis is returned for an axis other than "x" or "y"
var ErrInvalidAxis = errors.New("section: invalid axis (must be x or y)")

// Profile is a vertical cut through one layer along a row or column.
// Positions holds the coordinate walked along and Values the elevation at
// each position, NaN where the cell is sliced away.
type Profile struct {
	Layer     models.Layer
	Axis      string
	Index     int
	Positions []float64
	Values    []float64
}

// Profile cuts every layer along the given axis at a 1-based index, after
// slicing with b. Axis "x" fixes column index and walks Y; axis "y" fixes
// row index and walks X.
func (s *Section) Profile(axis string, index int, b models.Bounds) ([]Profile, error) {
	rows, cols := s.Dims()

	var n int
	switch axis {
	case "x", "X":
		axis = "x"
		if index < 1 || index > cols {
			return nil, fmt.Errorf("index %d outside columns 1..%d", index, cols)
		}
		n = rows
	case "y", "Y":
		axis = "y"
		if index < 1 || index > rows {
			return nil, fmt.Errorf("index %d outside rows 1..%d", index, rows)
		}
		n = cols
	default:
		return nil, fmt.Errorf("%q: %w", axis, ErrInvalidAxis)
	}

	slices := s.Slice(b)
	profiles := make([]Profile, 0, len(slices))
	for _, sl := range slices {
		p := Profile{
			Layer:     sl.Layer,
			Axis:      axis,
			Index:     index,
			Positions: make([]float64, n),
			Values:    make([]float64, n),
		}
		for k := 0; k < n; k++ {
			i, j := k, index-1
			if axis == "y" {
				i, j = index-1, k
			}
			p.Positions[k] = float64(k + 1)
			if sl.IsVisible(i, j) {
				p.Values[k] = sl.Z.At(i, j)
			} else {
				p.Values[k] = math.NaN()
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Count returns the number of positions along axis, i.e. how many profiles
// can be cut across it.
func (s *Section) Count(axis string) (int, error) {
	rows, cols := s.Dims()
	switch axis {
	case "x", "X":
		return cols, nil
	case "y", "Y":
		return rows, nil
	}
	return 0, fmt.Errorf("%q: %w", axis, ErrInvalidAxis)
}
