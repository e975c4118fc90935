package visualization

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// newTestViewer builds a viewer over a 4x5 section of gently sloping layers
func newTestViewer(t *testing.T) *Viewer {
	t.Helper()

	layer := func(base float64) *mat.Dense {
		m := mat.NewDense(4, 5, nil)
		for i := 0; i < 4; i++ {
			for j := 0; j < 5; j++ {
				m.Set(i, j, base+0.5*float64(i)+0.25*float64(j))
			}
		}
		return m
	}

	sec, err := section.New(layer(0), layer(5), layer(10), section.WithInclusive(true))
	require.NoError(t, err)

	return NewViewer(sec, WithTitle("test"), WithPlotSize(4, 3))
}

func TestTerrainRamp(t *testing.T) {
	assert.Equal(t, terrainStops[0].col, terrainAt(0))
	assert.Equal(t, terrainStops[len(terrainStops)-1].col, terrainAt(1))
	assert.Equal(t, terrainStops[0].col, terrainAt(-3))

	hex := terrainHex(10)
	require.Len(t, hex, 10)
	assert.Equal(t, "#333399", hex[0])
	assert.Equal(t, "#ffffff", hex[9])
}

func TestTerrainColorMap(t *testing.T) {
	var cm palette.ColorMap = NewTerrain(0, 10)

	_, err := cm.At(5)
	require.NoError(t, err)

	_, err = cm.At(-1)
	require.ErrorIs(t, err, palette.ErrUnderflow)
	_, err = cm.At(11)
	require.ErrorIs(t, err, palette.ErrOverflow)
	_, err = cm.At(math.NaN())
	require.ErrorIs(t, err, palette.ErrNaN)

	cm.SetMin(2)
	cm.SetMax(4)
	assert.Equal(t, 2.0, cm.Min())
	assert.Equal(t, 4.0, cm.Max())
	assert.Len(t, cm.Palette(7).Colors(), 7)
}

func TestSurfaceData(t *testing.T) {
	v := newTestViewer(t)

	b := v.Section().DefaultBounds()
	b.X = models.Range{Min: 1, Max: 2}

	slices := v.Section().Slice(b)
	data := surfaceData(slices[0])
	require.Len(t, data, 20)

	// One block of cols points per row, x increasing within each block
	rows, cols := v.Section().Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := data[i*cols+j]
			assert.Equal(t, float64(j+1), p.Value[0])
			assert.Equal(t, float64(i+1), p.Value[1])
		}
	}
	assert.IsType(t, float64(0), data[0].Value[2])

	// A new row starts only where x drops back
	blocks := 1
	for k := 1; k < len(data); k++ {
		if data[k].Value[0].(float64) < data[k-1].Value[0].(float64) {
			blocks++
		}
	}
	assert.Equal(t, rows, blocks)

	// Columns beyond X=2 are sliced away
	assert.Equal(t, missing, data[cols-1].Value[2])
	assert.Equal(t, float64(cols), data[cols-1].Value[0])
}

func TestRenderHTML(t *testing.T) {
	v := newTestViewer(t)

	var buf bytes.Buffer
	require.NoError(t, v.RenderHTML(&buf, v.Section().DefaultBounds()))

	html := buf.String()
	for _, want := range []string{"test", "upper", "central", "lower"} {
		assert.True(t, strings.Contains(html, want), "rendered chart should mention %q", want)
	}
}

func TestSaveHTML(t *testing.T) {
	v := newTestViewer(t)

	path := filepath.Join(t.TempDir(), "out", "surfaces.html")
	require.NoError(t, v.SaveHTML(path, v.Section().DefaultBounds()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveHeatmaps(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PNG rendering in short mode")
	}

	v := newTestViewer(t)
	dir := t.TempDir()

	b := v.Section().DefaultBounds()
	b.Z = models.Range{Min: 5, Max: 8}

	paths, err := v.SaveHeatmaps(dir, b)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		f, err := os.Open(path)
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Positive(t, cfg.Width)
		assert.Positive(t, cfg.Height)
	}
}

func TestRuns(t *testing.T) {
	nan := math.NaN()
	p := section.Profile{
		Positions: []float64{1, 2, 3, 4, 5, 6},
		Values:    []float64{1, 2, nan, 4, nan, nan},
	}

	got := runs(p)
	require.Len(t, got, 2)
	assert.Len(t, got[0], 2)
	assert.Len(t, got[1], 1)
	assert.Equal(t, 4.0, got[1][0].X)

	assert.Empty(t, runs(section.Profile{Positions: []float64{1}, Values: []float64{nan}}))
}

func TestSaveProfileSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PNG rendering in short mode")
	}

	v := newTestViewer(t)
	dir := t.TempDir()

	paths, err := v.SaveProfileSequence("y", dir, v.Section().DefaultBounds())
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "profile_y_001.png"), paths[0])

	_, err = v.SaveProfileSequence("z", dir, v.Section().DefaultBounds())
	require.ErrorIs(t, err, section.ErrInvalidAxis)

	err = v.SaveProfile("x", 9, filepath.Join(dir, "bad.png"), v.Section().DefaultBounds())
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PNG rendering in short mode")
	}

	v := newTestViewer(t)
	dir := t.TempDir()

	report, err := v.Export(dir, v.Section().DefaultBounds(), ExportOptions{
		HTML:        "surfaces.html",
		Heatmaps:    true,
		ProfileAxes: []string{"x"},
		STL:         "surfaces.stl",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "surfaces.html"), report.HTML)
	assert.Len(t, report.Heatmaps, 3)
	assert.Len(t, report.Profiles["x"], 5)

	// 3 layers x (3x4 cells) x 2 triangles
	assert.Equal(t, 72, report.Triangles)
	info, err := os.Stat(report.STL)
	require.NoError(t, err)
	assert.Equal(t, int64(80+4+50*72), info.Size())
}

func TestExportNothing(t *testing.T) {
	v := newTestViewer(t)

	report, err := v.Export(t.TempDir(), v.Section().DefaultBounds(), ExportOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.HTML)
	assert.Empty(t, report.STL)
	assert.Empty(t, report.Heatmaps)
}
