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

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// runs splits a profile into contiguous stretches of drawn values, since a
// line cannot pass through a sliced-away cell.
func runs(p section.Profile) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for k, z := range p.Values {
		if math.IsNaN(z) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: p.Positions[k], Y: z})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// profilePlot draws the cross-section of all layers at axis/index
func (v *Viewer) profilePlot(axis string, index int, b models.Bounds) (*plot.Plot, error) {
	profiles, err := v.sec.Profile(axis, index, b)
	if err != nil {
		return nil, err
	}
	e := v.sec.Extent()

	p := plot.New()
	p.Y.Label.Text = "Z"
	walk := e.Y
	switch profiles[0].Axis {
	case "x":
		p.Title.Text = fmt.Sprintf("%s - section at X=%d", v.title, index)
		p.X.Label.Text = "Y"
	default:
		p.Title.Text = fmt.Sprintf("%s - section at Y=%d", v.title, index)
		p.X.Label.Text = "X"
		walk = e.X
	}
	p.Legend.Top = true

	for _, prof := range profiles {
		col := terrainAt(layerShade[prof.Layer])
		for k, xys := range runs(prof) {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("%s layer: %w", prof.Layer, err)
			}
			line.Color = col
			line.Width = vg.Points(2)
			p.Add(line)
			if k == 0 {
				p.Legend.Add(prof.Layer.String(), line)
			}
		}
	}

	p.X.Min, p.X.Max = walk.Min, walk.Max
	p.Y.Min, p.Y.Max = e.Z.Min, e.Z.Max
	return p, nil
}

// layerShade places each layer on the terrain ramp for profile lines
var layerShade = map[models.Layer]float64{
	models.Lower:   0.1,
	models.Central: 0.3,
	models.Upper:   0.7,
}

// SaveProfile writes a PNG cross-section through all layers
func (v *Viewer) SaveProfile(axis string, index int, path string, b models.Bounds) error {
	p, err := v.profilePlot(axis, index, b)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := p.Save(v.plotWidth, v.plotHeight, path); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	v.logger.Debug("wrote profile", zap.String("axis", axis), zap.Int("index", index), zap.String("path", path))
	return nil
}

// SaveProfileSequence writes one cross-section per position along axis
func (v *Viewer) SaveProfileSequence(axis string, outputDir string, b models.Bounds) ([]string, error) {
	n, err := v.sec.Count(axis)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, n)
	for index := 1; index <= n; index++ {
		path := filepath.Join(outputDir, fmt.Sprintf("profile_%s_%03d.png", axis, index))
		if err := v.SaveProfile(axis, index, path, b); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
