package visualization

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// missing is the echarts marker for an empty data point
const missing = "-"

// surfaceData lays a slice out as echarts surface points row by row, x
// varying fastest, which is how echarts-gl reads the grid shape. Every cell is emitted at its index coordinate so the grid stays regular;
// cells sliced away on any axis carry the missing marker as their height.
func surfaceData(sl section.Slice) []opts.Chart3DData {
	rows, cols := sl.Z.Dims()
	data := make([]opts.Chart3DData, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var z interface{} = missing
			if sl.IsVisible(i, j) {
				z = sl.Z.At(i, j)
			}
			data = append(data, opts.Chart3DData{Value: []interface{}{float64(j + 1), float64(i + 1), z}})
		}
	}
	return data
}

// newSurfaceChart builds the 3D chart for b. The axes are pinned to the
// section extent and the visual map spans the global Z range.
func (v *Viewer) newSurfaceChart(b models.Bounds) *charts.Surface3D {
	e := v.sec.Extent()

	chart := charts.NewSurface3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: v.title,
			Theme:     v.theme,
			Width:     fmt.Sprintf("%dpx", v.width),
			Height:    fmt.Sprintf("%dpx", v.height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: v.title,
			Subtitle: fmt.Sprintf("x=[%g, %g] y=[%g, %g] z=[%g, %g]",
				b.X.Min, b.X.Max, b.Y.Min, b.Y.Max, b.Z.Min, b.Z.Max),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: e.X.Min, Max: e.X.Max}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Min: e.Y.Min, Max: e.Y.Max}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Min: e.Z.Min, Max: e.Z.Max}),
		charts.WithGrid3DOpts(opts.Grid3D{BoxWidth: 100, BoxDepth: 100, BoxHeight: 60}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(e.Z.Min),
			Max:        float32(e.Z.Max),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: terrainHex(10)},
		}),
	)

	for _, sl := range v.sec.Slice(b) {
		chart.AddSeries(sl.Layer.String(), surfaceData(sl))

		v.logger.Debug("added surface series",
			zap.String("layer", sl.Layer.String()),
			zap.Int("visible", sl.Visible))
	}

	return chart
}

// RenderHTML writes a self-contained HTML page with the sliced surfaces
func (v *Viewer) RenderHTML(w io.Writer, b models.Bounds) error {
	chart := v.newSurfaceChart(b)

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// SaveHTML renders the sliced surfaces to path
func (v *Viewer) SaveHTML(path string, b models.Bounds) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := v.RenderHTML(&buf, b); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	v.logger.Info("wrote surface chart", zap.String("path", path))
	return nil
}
