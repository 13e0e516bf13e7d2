package galaxy

// ────────────────────────────────────────────────────────────
// Drawing primitives
// ────────────────────────────────────────────────────────────

// RGBA is a straight (non-premultiplied) color with a float alpha in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Transparent is fully transparent black.
var Transparent = RGBA{}

// ColorStop is one stop of a gradient. Offset is in [0,1].
type ColorStop struct {
	Offset float64
	Color  RGBA
}

// Stroke describes a gradient line with a soft glow around it.
// The gradient runs from the line's start point (offset 0) to its
// end point (offset 1).
type Stroke struct {
	Width    float64
	Gradient []ColorStop
	Glow     RGBA
	Blur     float64
}

// Surface is the 2D drawing context the animator renders into.
// Coordinates are surface-local pixels.
type Surface interface {
	// SetSize sets the backing pixel dimensions and clears the surface.
	SetSize(width, height int)
	Clear()
	FillRadialGradient(cx, cy, radius float64, stops []ColorStop)
	FillCircle(x, y, r float64, c RGBA)
	StrokeLine(x0, y0, x1, y1 float64, s Stroke)
}

// ────────────────────────────────────────────────────────────
// Host contracts
// ────────────────────────────────────────────────────────────

// Observer is a subscription handle. Disconnect must be safe to call
// more than once.
type Observer interface {
	Disconnect()
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func()

func (f ObserverFunc) Disconnect() {
	if f != nil {
		f()
	}
}

// Host is the container the surface fills.
type Host interface {
	// Bounds returns the container's rendered size. ok is false when
	// the container is absent.
	Bounds() (width, height float64, ok bool)
	// ObserveResize calls fn whenever the container's size changes.
	ObserveResize(fn func()) Observer
	// ObserveVisibility calls fn when the surface enters or leaves view.
	ObserveVisibility(fn func(visible bool)) Observer
}

// FrameFunc is invoked once per animation frame with a millisecond
// timestamp on the scheduler's clock.
type FrameFunc func(now float64)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler is the host's animation-frame queue. A request fires at
// most once; callbacks that want another frame must request again.
type Scheduler interface {
	Now() float64
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// ThemeSource is the externally owned light/dark flag. The animator
// only reads it.
type ThemeSource interface {
	Dark() bool
	Observe(fn func(dark bool)) Observer
}

// Tokens resolves named color tokens, e.g. "--primary".
type Tokens interface {
	Lookup(name string) (string, bool)
}

// TokenMap is a static Tokens implementation.
type TokenMap map[string]string

func (m TokenMap) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}
