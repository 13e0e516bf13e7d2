// Package raster is a small software implementation of galaxy.Surface.
//
// A Canvas keeps a premultiplied float32 RGBA buffer. Callers draw in
// logical surface pixels; a per-axis scale maps them onto backing pixels,
// so the same animator can drive a full-resolution SDL texture (scale 1)
// or a terminal where one backing pixel is half a character cell.
//
// Finished frames are exported either as RGBA8 bytes for streaming
// textures or as an ANSI string of half-block cells.
package raster

import (
	"math"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// minPointCoverage keeps sub-pixel shapes visible on coarse grids.
const minPointCoverage = 0.35

// Canvas is a galaxy.Surface backed by a float pixel buffer.
type Canvas struct {
	sx, sy float64 // backing pixels per logical pixel
	w, h   int     // backing size
	lw, lh int     // logical size

	pix []float32 // premultiplied RGBA

	glow glowCache
}

var _ galaxy.Surface = (*Canvas)(nil)

// New returns a canvas with a 1:1 logical to backing mapping.
func New() *Canvas {
	return NewScaled(1, 1)
}

// NewScaled returns a canvas whose backing grid has sx×sy pixels per
// logical pixel. Terminal hosts use 1/cellWidth and 2/cellHeight.
func NewScaled(sx, sy float64) *Canvas {
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return &Canvas{sx: sx, sy: sy}
}

// ForCells returns a canvas for a terminal whose cells are cellW×cellH
// logical pixels, rendered as two stacked half-block pixels each.
func ForCells(cellW, cellH float64) *Canvas {
	return NewScaled(1/cellW, 2/cellH)
}

// SetSize resizes the backing buffer and clears it.
func (c *Canvas) SetSize(width, height int) {
	c.lw, c.lh = width, height
	c.w = max(1, int(math.Ceil(float64(width)*c.sx-1e-9)))
	c.h = max(1, int(math.Ceil(float64(height)*c.sy-1e-9)))
	n := c.w * c.h * 4
	if cap(c.pix) >= n {
		c.pix = c.pix[:n]
		c.Clear()
	} else {
		c.pix = make([]float32, n)
	}
	c.glow = glowCache{}
}

// Size returns the logical size last passed to SetSize.
func (c *Canvas) Size() (width, height int) { return c.lw, c.lh }

// Backing returns the backing pixel dimensions.
func (c *Canvas) Backing() (width, height int) { return c.w, c.h }

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// Pixel returns the premultiplied color at a backing pixel.
func (c *Canvas) Pixel(x, y int) (r, g, b, a float32) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, 0, 0, 0
	}
	i := (y*c.w + x) * 4
	return c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3]
}

// blend composites a straight color with alpha a over pixel (x, y).
func (c *Canvas) blend(x, y int, col galaxy.RGBA, a float64) {
	if a <= 0 || x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if a > 1 {
		a = 1
	}
	i := (y*c.w + x) * 4
	af := float32(a)
	inv := 1 - af
	c.pix[i] = float32(col.R)/255*af + c.pix[i]*inv
	c.pix[i+1] = float32(col.G)/255*af + c.pix[i+1]*inv
	c.pix[i+2] = float32(col.B)/255*af + c.pix[i+2]*inv
	c.pix[i+3] = af + c.pix[i+3]*inv
}

// ────────────────────────────────────────────────────────────
// Shapes
// ────────────────────────────────────────────────────────────

// FillCircle draws an anti-aliased disc. Discs smaller than a backing
// pixel are stamped onto the pixel containing their center.
func (c *Canvas) FillCircle(x, y, r float64, col galaxy.RGBA) {
	if col.A <= 0 || r <= 0 {
		return
	}
	bx, by := x*c.sx, y*c.sy
	rx, ry := r*c.sx, r*c.sy

	if rx < 0.5 && ry < 0.5 {
		cov := math.Max(minPointCoverage, math.Min(1, math.Pi*rx*ry))
		c.blend(int(math.Floor(bx)), int(math.Floor(by)), col, col.A*cov)
		return
	}

	x0, x1 := int(math.Floor(bx-rx)), int(math.Ceil(bx+rx))
	y0, y1 := int(math.Floor(by-ry)), int(math.Ceil(by+ry))
	soft := math.Min(rx, ry)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - bx) / rx
			dy := (float64(py) + 0.5 - by) / ry
			d := math.Hypot(dx, dy)
			cov := clamp01((1-d)*soft + 0.5)
			c.blend(px, py, col, col.A*cov)
		}
	}
}

// StrokeLine draws a round-capped gradient segment with a glow halo.
// The halo is composited first so the core line sits on top of it.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, s galaxy.Stroke) {
	if len(s.Gradient) == 0 {
		return
	}
	hw := math.Max(s.Width/2, 0)
	reach := hw + math.Max(s.Blur, 0)

	// Logical size of one backing pixel, for coverage falloff.
	pix := math.Max(1/c.sx, 1/c.sy)

	bx0 := int(math.Floor((math.Min(x0, x1) - reach) * c.sx))
	bx1 := int(math.Ceil((math.Max(x0, x1) + reach) * c.sx))
	by0 := int(math.Floor((math.Min(y0, y1) - reach) * c.sy))
	by1 := int(math.Ceil((math.Max(y0, y1) + reach) * c.sy))
	bx0, by0 = max(bx0, 0), max(by0, 0)
	bx1, by1 = min(bx1, c.w-1), min(by1, c.h-1)

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy

	for py := by0; py <= by1; py++ {
		ly := (float64(py) + 0.5) / c.sy
		for px := bx0; px <= bx1; px++ {
			lx := (float64(px) + 0.5) / c.sx

			t := 0.0
			if lenSq > 0 {
				t = clamp01(((lx-x0)*dx + (ly-y0)*dy) / lenSq)
			}
			d := math.Hypot(lx-(x0+t*dx), ly-(y0+t*dy))
			if d > reach {
				continue
			}

			col := gradientAt(s.Gradient, t)
			if col.A <= 0 {
				continue
			}

			if s.Blur > 0 && s.Glow.A > 0 {
				f := 1 - d/reach
				c.blend(px, py, s.Glow, s.Glow.A*col.A*f*f)
			}

			cov := clamp01((hw-d)/pix + 0.5)
			if d <= pix/2 {
				cov = math.Max(cov, minPointCoverage)
			}
			c.blend(px, py, col, col.A*cov)
		}
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
