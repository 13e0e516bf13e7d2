package raster

import (
	"math"
	"slices"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// gradientAt linearly interpolates a stop list at offset t. Stops are
// expected in ascending offset order.
func gradientAt(stops []galaxy.ColorStop, t float64) galaxy.RGBA {
	if len(stops) == 0 {
		return galaxy.Transparent
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return galaxy.RGBA{
			R: lerp8(a.Color.R, b.Color.R, f),
			G: lerp8(a.Color.G, b.Color.G, f),
			B: lerp8(a.Color.B, b.Color.B, f),
			A: a.Color.A + (b.Color.A-a.Color.A)*f,
		}
	}
	return last.Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// ────────────────────────────────────────────────────────────
// Radial glow layer cache
// ────────────────────────────────────────────────────────────

// The background glow only changes with surface size and theme, so the
// rendered layer is reused until its parameters change.
type glowCache struct {
	cx, cy, radius float64
	stops          []galaxy.ColorStop
	layer          []float32
}

func (g *glowCache) matches(cx, cy, radius float64, stops []galaxy.ColorStop) bool {
	return g.layer != nil && g.cx == cx && g.cy == cy && g.radius == radius &&
		slices.Equal(g.stops, stops)
}

// FillRadialGradient fills the whole surface with a radial gradient
// centered at (cx, cy); offset 1 sits at radius.
func (c *Canvas) FillRadialGradient(cx, cy, radius float64, stops []galaxy.ColorStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	if !c.glow.matches(cx, cy, radius, stops) {
		c.glow = glowCache{
			cx: cx, cy: cy, radius: radius,
			stops: slices.Clone(stops),
			layer: c.renderRadial(cx, cy, radius, stops),
		}
	}

	layer := c.glow.layer
	for i := 0; i < len(c.pix); i += 4 {
		a := layer[i+3]
		if a <= 0 {
			continue
		}
		inv := 1 - a
		c.pix[i] = layer[i] + c.pix[i]*inv
		c.pix[i+1] = layer[i+1] + c.pix[i+1]*inv
		c.pix[i+2] = layer[i+2] + c.pix[i+2]*inv
		c.pix[i+3] = a + c.pix[i+3]*inv
	}
}

func (c *Canvas) renderRadial(cx, cy, radius float64, stops []galaxy.ColorStop) []float32 {
	layer := make([]float32, len(c.pix))
	for py := 0; py < c.h; py++ {
		ly := (float64(py) + 0.5) / c.sy
		for px := 0; px < c.w; px++ {
			lx := (float64(px) + 0.5) / c.sx
			col := gradientAt(stops, math.Hypot(lx-cx, ly-cy)/radius)
			if col.A <= 0 {
				continue
			}
			i := (py*c.w + px) * 4
			a := float32(col.A)
			layer[i] = float32(col.R) / 255 * a
			layer[i+1] = float32(col.G) / 255 * a
			layer[i+2] = float32(col.B) / 255 * a
			layer[i+3] = a
		}
	}
	return layer
}
