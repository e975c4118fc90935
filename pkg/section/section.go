// Package section models the three stacked surfaces of a geological cross
// section and slices them along X, Y and Z.
package section

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"strataslice/internal/models"
	"strataslice/pkg/grid"
)

// ErrShapeMismatch is returned when a layer does not share the central layer's shape
var ErrShapeMismatch = errors.New("section: layer shape differs from central layer")

// Paths names the input file of every layer
type Paths struct {
	Lower   string
	Central string
	Upper   string
}

// Option configures a Section
type Option func(*Section)

// WithInclusive keeps values equal to a slicing bound instead of masking them
func WithInclusive(inclusive bool) Option {
	return func(s *Section) {
		s.inclusive = inclusive
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Section) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Section holds the loaded surfaces, their X/Y index grids and the global
// extent. It is immutable once built; slicing always returns new grids.
type Section struct {
	// layers is indexed by models.Layer
	layers [3]*mat.Dense

	// x and y hold the 1-based index coordinate of every cell,
	// derived from the central layer
	x *mat.Dense
	y *mat.Dense

	extent    models.Extent
	inclusive bool
	logger    *zap.Logger
}

// New builds a section from three surfaces of identical shape
func New(lower, central, upper *mat.Dense, opts ...Option) (*Section, error) {
	s := &Section{
		layers: [3]*mat.Dense{models.Lower: lower, models.Central: central, models.Upper: upper},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if central == nil || central.IsEmpty() {
		return nil, fmt.Errorf("central layer: %w", grid.ErrEmptyGrid)
	}
	rows, cols := central.Dims()
	for _, l := range []models.Layer{models.Lower, models.Upper} {
		m := s.layers[l]
		if m == nil || m.IsEmpty() {
			return nil, fmt.Errorf("%s layer: %w", l, grid.ErrEmptyGrid)
		}
		if r, c := m.Dims(); r != rows || c != cols {
			return nil, fmt.Errorf("%s layer is %dx%d, central is %dx%d: %w", l, r, c, rows, cols, ErrShapeMismatch)
		}
	}

	s.x, s.y = grid.Extents(central)

	var err error
	if s.extent.X, err = grid.Limits(grid.Flatten(s.x)); err != nil {
		return nil, fmt.Errorf("failed to compute x extent: %w", err)
	}
	if s.extent.Y, err = grid.Limits(grid.Flatten(s.y)); err != nil {
		return nil, fmt.Errorf("failed to compute y extent: %w", err)
	}
	if s.extent.Z, err = grid.Limits(grid.Flatten(lower, central, upper)); err != nil {
		return nil, fmt.Errorf("failed to compute z extent: %w", err)
	}

	s.logger.Debug("section built",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Float64("zmin", s.extent.Z.Min),
		zap.Float64("zmax", s.extent.Z.Max))

	return s, nil
}

// Load reads the three layer files and builds a section from them
func Load(paths Paths, opts ...Option) (*Section, error) {
	files := []struct {
		layer models.Layer
		path  string
	}{
		{models.Lower, paths.Lower},
		{models.Central, paths.Central},
		{models.Upper, paths.Upper},
	}

	var layers [3]*mat.Dense
	for _, f := range files {
		m, err := grid.LoadCSV(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s layer: %w", f.layer, err)
		}
		layers[f.layer] = m
	}

	return New(layers[models.Lower], layers[models.Central], layers[models.Upper], opts...)
}

// Dims returns the shared shape of the layers
func (s *Section) Dims() (rows, cols int) {
	return s.layers[models.Central].Dims()
}

// Layer returns the raw surface of l
func (s *Section) Layer(l models.Layer) mat.Matrix {
	return s.layers[l]
}

// Extent returns the global min/max of every axis
func (s *Section) Extent() models.Extent {
	return s.extent
}

// DefaultBounds returns bounds spanning the whole extent, which is where
// sliders start and where a reset returns them.
func (s *Section) DefaultBounds() models.Bounds {
	return s.extent.Bounds()
}

// Inclusive reports whether slicing keeps values equal to a bound
func (s *Section) Inclusive() bool {
	return s.inclusive
}
