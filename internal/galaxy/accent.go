package galaxy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PrimaryToken names the accent color used for meteors.
const PrimaryToken = "--primary"

// Fallbacks used when the accent token is absent or unreadable.
var (
	defaultAccent     = RGBA{R: 16, G: 185, B: 129, A: 1} // #10b981
	defaultAccentGlow = RGBA{R: 16, G: 185, B: 129, A: 0.45}
)

// accent is the per-frame resolution of the accent token.
type accent struct {
	color RGBA // opaque
	glow  RGBA
	found bool
}

// resolveAccent reads PrimaryToken from tokens. glowAlpha applies only
// when the token resolves; otherwise the fixed fallback glow is used.
func resolveAccent(tokens Tokens, glowAlpha float64) accent {
	if tokens != nil {
		if raw, ok := tokens.Lookup(PrimaryToken); ok {
			if c, err := ParseColor(raw); err == nil {
				return accent{color: c, glow: c.WithAlpha(glowAlpha), found: true}
			}
		}
	}
	return accent{color: defaultAccent, glow: defaultAccentGlow}
}

// ParseColor understands "#rrggbb", "#rgb", "rgb(r, g, b)" and HSL
// triples such as "160 84% 39%" or "hsl(160, 84%, 39%)". The result is
// opaque.
func ParseColor(raw string) (RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return RGBA{}, fmt.Errorf("empty color")

	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, fmt.Errorf("parsing hex color %q: %w", raw, err)
		}
		return fromColorful(c), nil

	case strings.HasPrefix(s, "rgb"):
		v, err := parseTriple(trimFunc(s), false)
		if err != nil {
			return RGBA{}, fmt.Errorf("parsing rgb color %q: %w", raw, err)
		}
		return RGBA{R: uint8(clampByte(v[0])), G: uint8(clampByte(v[1])), B: uint8(clampByte(v[2])), A: 1}, nil

	default:
		v, err := parseTriple(trimFunc(s), true)
		if err != nil {
			return RGBA{}, fmt.Errorf("parsing hsl color %q: %w", raw, err)
		}
		return fromColorful(colorful.Hsl(wrapHue(v[0]), clamp01(v[1]/100), clamp01(v[2]/100))), nil
	}
}

// trimFunc strips a "name(...)" wrapper and any "/ alpha" suffix.
func trimFunc(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSuffix(s[i+1:], ")")
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

func parseTriple(s string, hsl bool) ([3]float64, error) {
	var out [3]float64
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 3 {
		return out, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	for i, f := range fields {
		f = strings.TrimSuffix(f, "%")
		if hsl && i == 0 {
			f = strings.TrimSuffix(f, "deg")
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return out, fmt.Errorf("component %d is not finite", i+1)
		}
		out[i] = v
	}
	return out, nil
}

// wrapHue maps any angle into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func fromColorful(c colorful.Color) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: 1}
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
