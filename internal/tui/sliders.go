package tui

import (
	"strataslice/internal/models"
)

// slider is one bound control. It ranges over an axis extent and starts at
// the end of the extent it guards.
type slider struct {
	label string
	axis  string
	upper bool

	rng   models.Range
	init  float64
	value float64
}

// fraction is the slider position in [0, 1]
func (s slider) fraction() float64 {
	if s.rng.Span() == 0 {
		return 0
	}
	return (s.value - s.rng.Min) / s.rng.Span()
}

// nudge moves the slider by frac of its span, clamped to the range
func (s *slider) nudge(frac float64) {
	s.value = s.rng.Clamp(s.value + frac*s.rng.Span())
}

func (s *slider) reset() {
	s.value = s.init
}

// newSliders lays out the six bound controls: Z first, then X, then Y
func newSliders(e models.Extent) []slider {
	mk := func(label, axis string, r models.Range, upper bool) slider {
		init := r.Min
		if upper {
			init = r.Max
		}
		return slider{label: label, axis: axis, upper: upper, rng: r, init: init, value: init}
	}

	return []slider{
		mk("Lower Z Limit", "z", e.Z, false),
		mk("Upper Z Limit", "z", e.Z, true),
		mk("Lower X Limit", "x", e.X, false),
		mk("Upper X Limit", "x", e.X, true),
		mk("Lower Y Limit", "y", e.Y, false),
		mk("Upper Y Limit", "y", e.Y, true),
	}
}

// rescale moves sliders onto a new extent. A slider still at its starting
// end follows that end of the new extent; any other value is kept where it
// still fits and clamped otherwise.
func rescale(sliders []slider, e models.Extent) []slider {
	fresh := newSliders(e)
	for k := range fresh {
		if k >= len(sliders) || sliders[k].value == sliders[k].init {
			continue
		}
		fresh[k].value = fresh[k].rng.Clamp(sliders[k].value)
	}
	return fresh
}

// boundsOf reads the slicing bounds off the sliders
func boundsOf(sliders []slider) models.Bounds {
	var b models.Bounds
	for _, s := range sliders {
		r := b.Axis(s.axis)
		if r == nil {
			continue
		}
		if s.upper {
			r.Max = s.value
		} else {
			r.Min = s.value
		}
	}
	return b
}
