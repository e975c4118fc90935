package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// newTestSection builds an inclusive 5x5 section with Z spanning 0..100*scale.
// Extra options are applied after the inclusive one.
func newTestSection(t *testing.T, scale float64, opts ...section.Option) *section.Section {
	t.Helper()

	layer := func(offset float64) *mat.Dense {
		m := mat.NewDense(5, 5, nil)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				m.Set(i, j, scale*(offset+float64(i*5+j)))
			}
		}
		return m
	}

	opts = append([]section.Option{section.WithInclusive(true)}, opts...)
	sec, err := section.New(layer(0), layer(38), layer(76), opts...)
	require.NoError(t, err)
	return sec
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runePress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model, cmd
}

func TestNewStartsAtExtent(t *testing.T) {
	sec := newTestSection(t, 1)
	m := New(sec, Options{})

	assert.Equal(t, sec.DefaultBounds(), m.Bounds())
	require.Len(t, m.Slices(), 3)
	for _, sl := range m.Slices() {
		assert.Equal(t, 25, sl.Visible)
	}
}

func TestExclusiveStartHidesExtremes(t *testing.T) {
	sec := newTestSection(t, 1, section.WithInclusive(false))
	m := New(sec, Options{})

	assert.Equal(t, sec.DefaultBounds(), m.Bounds())

	// Cells on the first and last row and column sit on the X/Y bounds
	for _, sl := range m.Slices() {
		assert.Equal(t, 9, sl.Visible, "layer %s", sl.Layer)
		assert.False(t, sl.IsVisible(0, 2))
		assert.True(t, sl.IsVisible(2, 2))
	}
	assert.Contains(t, m.View(), "9/25 cells visible")

	rows := strings.Split(m.planView(), "\n")
	require.Len(t, rows, 5)
	assert.NotContains(t, rows[0], "▲")
	assert.Contains(t, rows[2], "▲")
}

func TestSliderMovesAndReslices(t *testing.T) {
	m := New(newTestSection(t, 1), Options{})

	// Raise the lower Z limit by 10% of 0..100
	m, _ = update(t, m, keyPress(tea.KeyShiftRight))
	assert.InDelta(t, 10.0, m.Bounds().Z.Min, 1e-9)

	visible := map[models.Layer]int{}
	for _, sl := range m.Slices() {
		visible[sl.Layer] = sl.Visible
	}
	// lower layer holds 0..24; values below 10 are gone
	assert.Equal(t, 15, visible[models.Lower])
	assert.Equal(t, 25, visible[models.Central])

	// Select the upper X limit and pull it down one step
	m, _ = update(t, m, keyPress(tea.KeyDown))
	m, _ = update(t, m, keyPress(tea.KeyDown))
	m, _ = update(t, m, keyPress(tea.KeyDown))
	m, _ = update(t, m, keyPress(tea.KeyLeft))
	assert.InDelta(t, 4.96, m.Bounds().X.Max, 1e-9)
	for _, sl := range m.Slices() {
		if sl.Layer == models.Central {
			assert.Equal(t, 20, sl.Visible)
		}
	}
}

func TestSliderClamps(t *testing.T) {
	m := New(newTestSection(t, 1), Options{})

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, keyPress(tea.KeyShiftLeft))
	}
	assert.Equal(t, 0.0, m.Bounds().Z.Min)

	m, _ = update(t, m, keyPress(tea.KeyUp))
	assert.Equal(t, 5, m.selected)
}

func TestReset(t *testing.T) {
	sec := newTestSection(t, 1)
	m := New(sec, Options{})

	m, _ = update(t, m, keyPress(tea.KeyShiftRight))
	m, _ = update(t, m, keyPress(tea.KeyDown))
	m, _ = update(t, m, keyPress(tea.KeyShiftLeft))
	require.NotEqual(t, sec.DefaultBounds(), m.Bounds())

	m, _ = update(t, m, runePress('r'))
	assert.Equal(t, sec.DefaultBounds(), m.Bounds())
	assert.Equal(t, "sliders reset", m.status)
}

func TestWriteAndAutoWrite(t *testing.T) {
	var written []models.Bounds
	opts := Options{
		Write: func(_ *section.Section, b models.Bounds) (string, error) {
			written = append(written, b)
			return "out/surfaces.html", nil
		},
	}

	m := New(newTestSection(t, 1), opts)

	// Without auto-write, moving a slider does not render
	_, cmd := update(t, m, keyPress(tea.KeyRight))
	assert.Nil(t, cmd)

	m, cmd = update(t, m, runePress('w'))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Len(t, written, 1)
	assert.Equal(t, "wrote out/surfaces.html", m.status)

	opts.AutoWrite = true
	m = New(newTestSection(t, 1), opts)
	_, cmd = update(t, m, keyPress(tea.KeyRight))
	require.NotNil(t, cmd)
	cmd()
	assert.Len(t, written, 2)
	assert.InDelta(t, 1.0, written[1].Z.Min, 1e-9)
}

func TestWriteError(t *testing.T) {
	m := New(newTestSection(t, 1), Options{
		Write: func(*section.Section, models.Bounds) (string, error) {
			return "", errors.New("disk full")
		},
	})

	m, cmd := update(t, m, runePress('w'))
	m, _ = update(t, m, cmd())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "disk full")
}

func TestReload(t *testing.T) {
	bigger := newTestSection(t, 2)
	m := New(newTestSection(t, 1), Options{
		Load: func() (*section.Section, error) { return bigger, nil },
	})

	// Move the upper Z limit to 50 of 0..100
	m, _ = update(t, m, keyPress(tea.KeyDown))
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, keyPress(tea.KeyShiftLeft))
	}
	require.InDelta(t, 50.0, m.Bounds().Z.Max, 1e-9)

	m, cmd := update(t, m, ReloadMsg{})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, bigger.Extent(), m.sec.Extent())
	// Values that still fit the new extent are kept
	assert.InDelta(t, 50.0, m.Bounds().Z.Max, 1e-9)
	assert.Equal(t, 0.0, m.Bounds().Z.Min)
	assert.Equal(t, "surfaces reloaded", m.status)
}

func TestReloadFollowsUntouchedSliders(t *testing.T) {
	bigger := newTestSection(t, 2)
	m := New(newTestSection(t, 1), Options{
		Load: func() (*section.Section, error) { return bigger, nil },
	})
	require.Equal(t, 100.0, m.Bounds().Z.Max)

	m, cmd := update(t, m, ReloadMsg{})
	m, _ = update(t, m, cmd())

	// Sliders left at their starting ends track the new extent
	assert.Equal(t, bigger.DefaultBounds(), m.Bounds())
	assert.Equal(t, 200.0, m.Bounds().Z.Max)
	for _, sl := range m.Slices() {
		assert.Equal(t, 25, sl.Visible)
	}
}

func TestReloadError(t *testing.T) {
	m := New(newTestSection(t, 1), Options{
		Load: func() (*section.Section, error) { return nil, errors.New("bad csv") },
	})

	m, cmd := update(t, m, ReloadMsg{})
	m, _ = update(t, m, cmd())
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "bad csv")

	// Without a loader reloads are ignored
	m = New(newTestSection(t, 1), Options{})
	_, cmd = update(t, m, ReloadMsg{})
	assert.Nil(t, cmd)
}

func TestQuit(t *testing.T) {
	m := New(newTestSection(t, 1), Options{})
	_, cmd := update(t, m, runePress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView(t *testing.T) {
	m := New(newTestSection(t, 1), Options{Title: "strata"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	for _, want := range []string{"strata", "Lower Z Limit", "Upper Y Limit", "25/25 cells visible"} {
		assert.Contains(t, view, want)
	}

	// 5 plan view rows
	plan := m.planView()
	assert.Equal(t, 5, strings.Count(plan, "\n")+1)
}
