package visualization

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// colorBarWidth is the strip reserved on the right of a heat map
const colorBarWidth = 1.2 * vg.Inch

// sliceGrid adapts a slice to plotter.GridXYZ. Columns run along X and rows
// along Y; cells that are sliced away on any axis report NaN.
type sliceGrid struct {
	sl section.Slice
}

func (g sliceGrid) Dims() (c, r int) {
	r, c = g.sl.Z.Dims()
	return c, r
}

func (g sliceGrid) Z(c, r int) float64 {
	if !g.sl.IsVisible(r, c) {
		return math.NaN()
	}
	return g.sl.Z.At(r, c)
}

func (g sliceGrid) X(c int) float64 { return float64(c + 1) }

func (g sliceGrid) Y(r int) float64 { return float64(r + 1) }

// heatmapPlots builds the plan-view heat map of one layer and its colour bar
func (v *Viewer) heatmapPlots(layer models.Layer, b models.Bounds) (*plot.Plot, *plot.Plot, error) {
	slices := v.sec.Slice(b)
	idx := -1
	for k := range slices {
		if slices[k].Layer == layer {
			idx = k
			break
		}
	}
	if idx < 0 {
		return nil, nil, fmt.Errorf("unknown layer %d", layer)
	}
	sl := slices[idx]

	e := v.sec.Extent()
	zmin, zmax := e.Z.Min, e.Z.Max
	if zmax == zmin {
		// A flat section still needs a non-empty colour scale
		zmin, zmax = zmin-0.5, zmax+0.5
	}
	cm := NewTerrain(zmin, zmax)

	hm := plotter.NewHeatMap(sliceGrid{sl: sl}, cm.Palette(255))
	hm.Min = zmin
	hm.Max = zmax

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s surface (%d cells)", v.title, layer, sl.Visible)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(hm)

	// Pin the view to the whole extent, half a cell beyond the outer centres
	p.X.Min, p.X.Max = e.X.Min-0.5, e.X.Max+0.5
	p.Y.Min, p.Y.Max = e.Y.Min-0.5, e.Y.Max+0.5

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = "Z"
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	return p, bar, nil
}

// SaveHeatmap writes a PNG heat map of one sliced layer with a colour bar
// normalised to the global Z range.
func (v *Viewer) SaveHeatmap(layer models.Layer, path string, b models.Bounds) error {
	p, bar, err := v.heatmapPlots(layer, b)
	if err != nil {
		return err
	}

	img := vgimg.New(v.plotWidth, v.plotHeight)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, v.plotWidth-colorBarWidth, 0, 0, 0))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode heat map: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	v.logger.Debug("wrote heat map", zap.String("layer", layer.String()), zap.String("path", path))
	return nil
}

// SaveHeatmaps writes one heat map per layer into dir and returns the paths
func (v *Viewer) SaveHeatmaps(dir string, b models.Bounds) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, layer := range models.Layers {
		path := filepath.Join(dir, fmt.Sprintf("heatmap_%s.png", layer))
		if err := v.SaveHeatmap(layer, path, b); err != nil {
			return paths, fmt.Errorf("%s layer: %w", layer, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
