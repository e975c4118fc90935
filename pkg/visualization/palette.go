package visualization

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// terrainStops approximates matplotlib's "terrain" ramp: deep water through
// lowland green and sand to rock and snow.
var terrainStops = []struct {
	at  float64
	col color.NRGBA
}{
	{0.00, color.NRGBA{R: 0x33, G: 0x33, B: 0x99, A: 0xff}},
	{0.15, color.NRGBA{R: 0x00, G: 0x99, B: 0xff, A: 0xff}},
	{0.25, color.NRGBA{R: 0x00, G: 0xcc, B: 0x66, A: 0xff}},
	{0.50, color.NRGBA{R: 0xff, G: 0xff, B: 0x99, A: 0xff}},
	{0.75, color.NRGBA{R: 0x80, G: 0x5c, B: 0x54, A: 0xff}},
	{1.00, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
}

// terrainAt returns the ramp colour at t in [0, 1]
func terrainAt(t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	for k := 1; k < len(terrainStops); k++ {
		lo, hi := terrainStops[k-1], terrainStops[k]
		if t > hi.at {
			continue
		}
		f := (t - lo.at) / (hi.at - lo.at)
		mix := func(a, b uint8) uint8 {
			return uint8(math.Round(float64(a) + f*(float64(b)-float64(a))))
		}
		return color.NRGBA{
			R: mix(lo.col.R, hi.col.R),
			G: mix(lo.col.G, hi.col.G),
			B: mix(lo.col.B, hi.col.B),
			A: 0xff,
		}
	}
	return terrainStops[len(terrainStops)-1].col
}

// terrainHex samples the ramp at n evenly spaced points as #rrggbb strings
func terrainHex(n int) []string {
	if n < 2 {
		n = 2
	}
	out := make([]string, n)
	for i := range out {
		c := terrainAt(float64(i) / float64(n-1))
		out[i] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return out
}

// Terrain is a palette.ColorMap over the terrain ramp
type Terrain struct {
	min, max float64
	alpha    float64
}

// NewTerrain returns a terrain colour map normalised to [min, max]
func NewTerrain(min, max float64) *Terrain {
	return &Terrain{min: min, max: max, alpha: 1}
}

// At implements palette.ColorMap
func (t *Terrain) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < t.min:
		return nil, palette.ErrUnderflow
	case v > t.max:
		return nil, palette.ErrOverflow
	}

	f := 0.0
	if t.max > t.min {
		f = (v - t.min) / (t.max - t.min)
	}
	c := terrainAt(f)
	c.A = uint8(math.Round(t.alpha * 0xff))
	return c, nil
}

func (t *Terrain) Max() float64 { return t.max }
func (t *Terrain) SetMax(v float64) { t.max = v }
func (t *Terrain) Min() float64 { return t.min }
func (t *Terrain) SetMin(v float64) { t.min = v }
func (t *Terrain) Alpha() float64 { return t.alpha }
func (t *Terrain) SetAlpha(a float64) { t.alpha = a }

// Palette implements palette.ColorMap
func (t *Terrain) Palette(colors int) palette.Palette {
	return terrainPalette(colors)
}

type terrainPalette int

func (p terrainPalette) Colors() []color.Color {
	n := int(p)
	if n < 2 {
		n = 2
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = terrainAt(float64(i) / float64(n-1))
	}
	return out
}
