package visualization

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"strataslice/internal/models"
	"strataslice/pkg/stl"
)

// ExportOptions selects the outputs written by Export
type ExportOptions struct {
	// HTML is the file name of the 3D chart; empty disables it
	HTML string

	// Heatmaps writes one PNG heat map per layer
	Heatmaps bool

	// ProfileAxes lists the axes ("x", "y") along which every cross-section
	// is written as a PNG sequence
	ProfileAxes []string

	// STL is the file name of the mesh export; empty disables it
	STL string
}

// Report lists the files written by Export
type Report struct {
	HTML      string
	Heatmaps  []string
	Profiles  map[string][]string
	STL       string
	Triangles int
}

// SaveSTL writes every sliced layer into one STL mesh and returns the
// number of facets written.
func (v *Viewer) SaveSTL(path string, b models.Bounds) (int, error) {
	var triangles []stl.Triangle
	for _, sl := range v.sec.Slice(b) {
		triangles = append(triangles, stl.Heightfield(sl.X, sl.Y, sl.Z)...)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := stl.SaveToSTL(path, triangles); err != nil {
		return 0, fmt.Errorf("failed to save STL file: %w", err)
	}

	v.logger.Info("wrote mesh", zap.String("path", path), zap.Int("triangles", len(triangles)))
	return len(triangles), nil
}

// Export writes the selected outputs for bounds b into dir
func (v *Viewer) Export(dir string, b models.Bounds, o ExportOptions) (Report, error) {
	report := Report{Profiles: make(map[string][]string)}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	if o.HTML != "" {
		path := filepath.Join(dir, o.HTML)
		if err := v.SaveHTML(path, b); err != nil {
			return report, err
		}
		report.HTML = path
	}

	if o.Heatmaps {
		paths, err := v.SaveHeatmaps(filepath.Join(dir, "heatmaps"), b)
		if err != nil {
			return report, fmt.Errorf("failed to save heat maps: %w", err)
		}
		report.Heatmaps = paths
	}

	for _, axis := range o.ProfileAxes {
		paths, err := v.SaveProfileSequence(axis, filepath.Join(dir, "profiles", axis), b)
		if err != nil {
			return report, fmt.Errorf("failed to save %s profiles: %w", axis, err)
		}
		report.Profiles[axis] = paths
	}

	if o.STL != "" {
		path := filepath.Join(dir, o.STL)
		n, err := v.SaveSTL(path, b)
		if err != nil {
			return report, err
		}
		report.STL = path
		report.Triangles = n
	}

	return report, nil
}
