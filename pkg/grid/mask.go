package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"strataslice/internal/models"
)

// ErrNoFiniteValues is returned by Limits when every value is NaN or the input is empty
var ErrNoFiniteValues = errors.New("grid: no finite values")

// Flatten concatenates the cells of every matrix into one row-major slice
func Flatten(ms ...mat.Matrix) []float64 {
	var n int
	for _, m := range ms {
		r, c := m.Dims()
		n += r * c
	}

	values := make([]float64, 0, n)
	for _, m := range ms {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				values = append(values, m.At(i, j))
			}
		}
	}
	return values
}

// Limits returns the min and max of the finite values. NaN and ±Inf are
// skipped so that a single infinite cell cannot unbound an axis.
func Limits(values []float64) (models.Range, error) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return models.Range{}, ErrNoFiniteValues
	}
	return models.Range{Min: floats.Min(finite), Max: floats.Max(finite)}, nil
}

// Mask returns a copy of m where every value at or beyond either bound
// (v <= lower or v >= upper) is replaced with NaN.
func Mask(m mat.Matrix, lower, upper float64) *mat.Dense {
	return maskWith(m, models.Range{Min: lower, Max: upper}, false)
}

// MaskInclusive is like Mask but keeps values equal to either bound
func MaskInclusive(m mat.Matrix, lower, upper float64) *mat.Dense {
	return maskWith(m, models.Range{Min: lower, Max: upper}, true)
}

func maskWith(m mat.Matrix, r models.Range, inclusive bool) *mat.Dense {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if !r.Contains(v, inclusive) {
				v = math.NaN()
			}
			out.Set(i, j, v)
		}
	}
	return out
}

// Count returns the number of cells that are not NaN
func Count(m mat.Matrix) int {
	rows, cols := m.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !math.IsNaN(m.At(i, j)) {
				n++
			}
		}
	}
	return n
}
