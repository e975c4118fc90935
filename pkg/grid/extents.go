package grid

import "gonum.org/v1/gonum/mat"

// Extents builds the X and Y coordinate grids for m.
// Both have m's shape and hold 1-based cell indices:
// x varies along columns and y varies along rows.
func Extents(m mat.Matrix) (x, y *mat.Dense) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}, &mat.Dense{}
	}

	x = mat.NewDense(rows, cols, nil)
	y = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x.Set(i, j, float64(j+1))
			y.Set(i, j, float64(i+1))
		}
	}
	return x, y
}
