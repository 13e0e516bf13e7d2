package raster

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// halfBlock paints the foreground in the top half of a cell.
const halfBlock = "▀"

// Background parses a hex color for use as the export backdrop. Invalid
// input yields black.
func Background(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// over composites backing pixel (x, y) onto bg and returns 8-bit RGB.
func (c *Canvas) over(x, y int, bg colorful.Color) (r, g, b uint8) {
	pr, pg, pb, pa := c.Pixel(x, y)
	inv := 1 - float64(pa)
	out := colorful.Color{
		R: float64(pr) + bg.R*inv,
		G: float64(pg) + bg.G*inv,
		B: float64(pb) + bg.B*inv,
	}
	return out.Clamped().RGB255()
}

// RGBA8 writes the frame composited onto bg as R,G,B,A bytes, which is
// the memory layout of an ABGR8888 texture on little-endian hosts. dst
// is reused when large enough.
func (c *Canvas) RGBA8(bg colorful.Color, dst []byte) []byte {
	n := c.w * c.h * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			i := (y*c.w + x) * 4
			dst[i], dst[i+1], dst[i+2] = c.over(x, y, bg)
			dst[i+3] = 0xff
		}
	}
	return dst
}

// ANSI renders the frame as rows of half-block cells: each character
// carries two stacked backing pixels, the top one as foreground and the
// bottom one as background. Colors are degraded to what profile
// supports; SGR sequences are only emitted when a color changes.
func (c *Canvas) ANSI(bg colorful.Color, profile termenv.Profile) string {
	enc := newSGREncoder(profile)
	rows := (c.h + 1) / 2

	var sb strings.Builder
	sb.Grow(rows * c.w * 8)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		enc.reset()
		for x := 0; x < c.w; x++ {
			top := pack(c.over(x, row*2, bg))
			bottom := pack(c.over(x, row*2+1, bg))
			enc.write(&sb, top, bottom)
			sb.WriteString(halfBlock)
		}
		sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}
	return sb.String()
}

func pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// sgrEncoder caches per-color sequences and tracks the current pen.
type sgrEncoder struct {
	profile termenv.Profile
	fg, bg  map[uint32]string

	curFG, curBG uint32
	started      bool
}

func newSGREncoder(p termenv.Profile) *sgrEncoder {
	return &sgrEncoder{
		profile: p,
		fg:      make(map[uint32]string),
		bg:      make(map[uint32]string),
	}
}

func (e *sgrEncoder) reset() { e.started = false }

func (e *sgrEncoder) write(sb *strings.Builder, fg, bg uint32) {
	if e.started && fg == e.curFG && bg == e.curBG {
		return
	}
	var parts []string
	if !e.started || fg != e.curFG {
		if s := e.seq(e.fg, fg, false); s != "" {
			parts = append(parts, s)
		}
	}
	if !e.started || bg != e.curBG {
		if s := e.seq(e.bg, bg, true); s != "" {
			parts = append(parts, s)
		}
	}
	e.curFG, e.curBG, e.started = fg, bg, true
	if len(parts) > 0 {
		sb.WriteString(termenv.CSI + strings.Join(parts, ";") + "m")
	}
}

func (e *sgrEncoder) seq(cache map[uint32]string, rgb uint32, background bool) string {
	if s, ok := cache[rgb]; ok {
		return s
	}
	col := colorful.Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
	var s string
	if tc := e.profile.Color(col.Hex()); tc != nil {
		s = tc.Sequence(background)
	}
	cache[rgb] = s
	return s
}
