// Package visualization renders sliced sections: an interactive 3D surface
// chart as HTML, and static heat maps and cross-section profiles as PNG.
//
// Every output fixes its axes to the section's global extent and normalises
// colours to the global Z range, so slicing only ever hides cells and never
// rescales the view.
package visualization

import (
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"strataslice/pkg/section"
)

// Viewer renders a section under arbitrary slicing bounds
type Viewer struct {
	sec *section.Section

	// title is shown above every chart
	title string

	// width and height size the HTML chart in pixels
	width  int
	height int

	// theme is the echarts theme name
	theme string

	// plotWidth and plotHeight size the PNG outputs
	plotWidth  vg.Length
	plotHeight vg.Length

	logger *zap.Logger
}

// Option configures a Viewer
type Option func(*Viewer)

// WithTitle sets the chart title
func WithTitle(title string) Option {
	return func(v *Viewer) { v.title = title }
}

// WithSize sets the HTML chart size in pixels
func WithSize(width, height int) Option {
	return func(v *Viewer) {
		if width > 0 {
			v.width = width
		}
		if height > 0 {
			v.height = height
		}
	}
}

// WithTheme sets the echarts theme
func WithTheme(theme string) Option {
	return func(v *Viewer) { v.theme = theme }
}

// WithPlotSize sets the PNG size in inches
func WithPlotSize(width, height float64) Option {
	return func(v *Viewer) {
		if width > 0 {
			v.plotWidth = vg.Length(width) * vg.Inch
		}
		if height > 0 {
			v.plotHeight = vg.Length(height) * vg.Inch
		}
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(v *Viewer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewViewer creates a viewer for sec
func NewViewer(sec *section.Section, opts ...Option) *Viewer {
	v := &Viewer{
		sec:        sec,
		title:      "Surfaces",
		width:      900,
		height:     700,
		theme:      "white",
		plotWidth:  8 * vg.Inch,
		plotHeight: 6 * vg.Inch,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Section returns the section being rendered
func (v *Viewer) Section() *section.Section {
	return v.sec
}
