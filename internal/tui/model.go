// Package tui is the interactive slicing front end: six sliders bound the
// X, Y and Z ranges, and every change re-slices the three surfaces.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

const (
	smallStep = 0.01
	bigStep   = 0.10

	// maxMapCols and maxMapRows cap the plan view; larger grids are sampled
	maxMapCols = 64
	maxMapRows = 24
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#243141")).Padding(0, 1)

	// layerGlyphs mark which layer is seen from above in the plan view
	layerGlyphs = map[models.Layer]string{
		models.Upper:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")).Render("▲"),
		models.Central: lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Render("■"),
		models.Lower:   lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")).Render("▼"),
	}
)

// ReloadMsg asks the model to reload its surfaces from disk
type ReloadMsg struct{}

type loadedMsg struct {
	sec *section.Section
	err error
}

type writtenMsg struct {
	path string
	err  error
}

// Options wires the model to the outside world
type Options struct {
	// Load rebuilds the section from its inputs; nil disables reloading
	Load func() (*section.Section, error)

	// Write renders the section under the given bounds and returns the
	// path written; nil disables writing
	Write func(*section.Section, models.Bounds) (string, error)

	// AutoWrite calls Write after every slider change
	AutoWrite bool

	// Title is shown in the header
	Title string

	Logger *zap.Logger
}

// Model is the bubbletea model of the slicing UI
type Model struct {
	sec      *section.Section
	opts     Options
	sliders  []slider
	selected int
	slices   []section.Slice

	keys keyMap
	help help.Model
	bar  progress.Model

	status string
	err    error
	width  int
}

// New creates the UI for sec with every slider at its initial position
func New(sec *section.Section, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "strataslice"
	}

	m := Model{
		sec:     sec,
		opts:    opts,
		sliders: newSliders(sec.Extent()),
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
	m.reslice()
	return m
}

// Bounds returns the bounds currently set by the sliders
func (m Model) Bounds() models.Bounds {
	return boundsOf(m.sliders)
}

// Slices returns the layers as currently sliced
func (m Model) Slices() []section.Slice {
	return m.slices
}

func (m *Model) reslice() {
	m.slices = m.sec.Slice(m.Bounds())
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReloadMsg:
		if m.opts.Load == nil {
			return m, nil
		}
		load := m.opts.Load
		return m, func() tea.Msg {
			sec, err := load()
			return loadedMsg{sec: sec, err: err}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("reload failed: %w", msg.err)
			m.opts.Logger.Warn("reload failed", zap.Error(msg.err))
			return m, nil
		}
		m.sec = msg.sec
		m.sliders = rescale(m.sliders, m.sec.Extent())
		m.err = nil
		m.status = "surfaces reloaded"
		m.reslice()
		return m, m.autoWrite()

	case writtenMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("write failed: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.status = "wrote " + msg.path
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	changed := false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.selected = (m.selected + len(m.sliders) - 1) % len(m.sliders)
	case key.Matches(msg, m.keys.Down):
		m.selected = (m.selected + 1) % len(m.sliders)
	case key.Matches(msg, m.keys.Left):
		m.sliders[m.selected].nudge(-smallStep)
		changed = true
	case key.Matches(msg, m.keys.Right):
		m.sliders[m.selected].nudge(smallStep)
		changed = true
	case key.Matches(msg, m.keys.BigLeft):
		m.sliders[m.selected].nudge(-bigStep)
		changed = true
	case key.Matches(msg, m.keys.BigRight):
		m.sliders[m.selected].nudge(bigStep)
		changed = true
	case key.Matches(msg, m.keys.Reset):
		for k := range m.sliders {
			m.sliders[k].reset()
		}
		m.status = "sliders reset"
		changed = true
	case key.Matches(msg, m.keys.Write):
		return m, m.writeCmd()
	}

	if !changed {
		return m, nil
	}
	m.reslice()
	return m, m.autoWrite()
}

func (m Model) autoWrite() tea.Cmd {
	if !m.opts.AutoWrite {
		return nil
	}
	return m.writeCmd()
}

// writeCmd renders the current state off the update loop
func (m Model) writeCmd() tea.Cmd {
	if m.opts.Write == nil {
		return nil
	}
	write, sec, b := m.opts.Write, m.sec, m.Bounds()
	return func() tea.Msg {
		path, err := write(sec, b)
		return writtenMsg{path: path, err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	e := m.sec.Extent()
	rows, cols := m.sec.Dims()
	sb.WriteString(titleStyle.Render(m.opts.Title))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %dx%d cells  z=[%g, %g]", rows, cols, e.Z.Min, e.Z.Max)))
	sb.WriteString("\n\n")

	for k, s := range m.sliders {
		cursor, label := "  ", dimStyle.Render(fmt.Sprintf("%-14s", s.label))
		if k == m.selected {
			cursor, label = "> ", selectedStyle.Render(fmt.Sprintf("%-14s", s.label))
		}
		sb.WriteString(fmt.Sprintf("%s%s %s %10.3f\n", cursor, label, m.bar.ViewAs(s.fraction()), s.value))
	}
	sb.WriteString("\n")

	total := rows * cols
	for _, sl := range m.slices {
		sb.WriteString(fmt.Sprintf("%s %-8s %d/%d cells visible\n", layerGlyphs[sl.Layer], sl.Layer, sl.Visible, total))
	}
	sb.WriteString("\n")
	sb.WriteString(boxStyle.Render(m.planView()))
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		sb.WriteString(dimStyle.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

// planView draws the grid from above, marking the top-most visible layer of
// every cell. Large grids are sampled down to fit.
func (m Model) planView() string {
	rows, cols := m.sec.Dims()
	rowStep := (rows + maxMapRows - 1) / maxMapRows
	colStep := (cols + maxMapCols - 1) / maxMapCols

	var sb strings.Builder
	// Y grows upwards, so draw the last row first
	for i := rows - 1; i >= 0; i -= rowStep {
		for j := 0; j < cols; j += colStep {
			glyph := dimStyle.Render("·")
			for _, sl := range m.slices {
				if sl.IsVisible(i, j) {
					glyph = layerGlyphs[sl.Layer]
					break
				}
			}
			sb.WriteString(glyph)
		}
		if i-rowStep >= 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
