package galaxy

import (
	"math"
	"math/rand/v2"
)

// ────────────────────────────────────────────────────────────
// Control loop states
// ────────────────────────────────────────────────────────────

// State is the animator's position in its frame control loop.
type State int

const (
	// StateIdle: no frame is pending (surface hidden, or between a
	// frame ending and the next request).
	StateIdle State = iota
	// StateScheduled: exactly one frame request is pending.
	StateScheduled
	// StateRunning: a frame callback is executing.
	StateRunning
	// StateDisposed: observers are released and nothing re-arms the loop.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Options configures an Animator. The zero value is usable.
type Options struct {
	Quality Quality
	// Rand returns values in [0,1). Defaults to math/rand/v2.Float64.
	Rand   func() float64
	Tokens Tokens
}

// Stats is a point-in-time snapshot of the animator.
type Stats struct {
	State   State `json:"-"`
	Tier    Tier  `json:"-"`
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Visible bool  `json:"visible"`
	Dark    bool  `json:"dark"`

	Stars   int `json:"stars"`
	Meteors int `json:"meteors"`

	Frames  int `json:"frames"`
	Drawn   int `json:"drawn"`
	Skipped int `json:"skipped"`
	Spawned int `json:"spawned"`
	Expired int `json:"expired"`

	LastDrawAt float64 `json:"last_draw_at"`
}

// ────────────────────────────────────────────────────────────
// Animator
// ────────────────────────────────────────────────────────────

// Animator owns the star and meteor populations and draws them once
// per scheduler frame while the surface is visible. It is not safe for
// concurrent use: every method and observer callback must run on the
// host's frame queue.
type Animator struct {
	surface Surface
	host    Host
	sched   Scheduler
	quality Quality
	rnd     func() float64
	tokens  Tokens

	width, height int
	visible       bool
	dark          bool

	state State
	frame FrameID
	// gen invalidates callbacks of cancelled requests.
	gen uint64

	drawn        bool
	lastDrawAt   float64
	nextMeteorAt float64

	stars   []Star
	meteors []Meteor

	observers []Observer
	counters  Stats
}

// New sets up an animator on the given surface and starts its frame
// loop. When the surface, host or scheduler is missing, or the host has
// no container, the returned animator is inert: it never draws and
// Dispose is a no-op.
func New(surface Surface, host Host, sched Scheduler, theme ThemeSource, opts Options) *Animator {
	a := &Animator{
		quality: opts.Quality,
		rnd:     opts.Rand,
		tokens:  opts.Tokens,
		state:   StateDisposed,
	}
	if a.quality == "" {
		a.quality = QualityAuto
	}
	if a.rnd == nil {
		a.rnd = rand.Float64
	}

	if surface == nil || host == nil || sched == nil {
		return a
	}
	if _, _, ok := host.Bounds(); !ok {
		return a
	}

	a.surface = surface
	a.host = host
	a.sched = sched
	a.state = StateIdle
	a.visible = true

	if theme != nil {
		a.dark = theme.Dark()
		a.observe(theme.Observe(func(dark bool) {
			a.dark = dark
		}))
	}

	a.nextMeteorAt = sched.Now() + firstMeteorDelay + a.rnd()*firstMeteorJitter

	a.observe(host.ObserveResize(a.resize))
	a.resize()

	// Hosts may report the initial visibility synchronously.
	a.observe(host.ObserveVisibility(a.setVisible))
	if a.visible && a.state == StateIdle {
		a.schedule()
	}
	return a
}

func (a *Animator) observe(o Observer) {
	if o != nil {
		a.observers = append(a.observers, o)
	}
}

// Dispose cancels any pending frame and disconnects every observer.
func (a *Animator) Dispose() {
	if a.state == StateDisposed {
		return
	}
	if a.frame != 0 {
		a.sched.CancelFrame(a.frame)
		a.frame = 0
	}
	a.gen++
	for _, o := range a.observers {
		o.Disconnect()
	}
	a.observers = nil
	a.state = StateDisposed
}

// ────────────────────────────────────────────────────────────
// Observers
// ────────────────────────────────────────────────────────────

// resize matches the surface to the container and reseeds the stars.
func (a *Animator) resize() {
	if a.state == StateDisposed {
		return
	}
	bw, bh, ok := a.host.Bounds()
	if !ok {
		return
	}
	a.width = max(1, int(math.Floor(bw)))
	a.height = max(1, int(math.Floor(bh)))
	a.surface.SetSize(a.width, a.height)

	tier := a.Tier()
	a.stars = SeedStars(a.rnd, TargetStars(tier, a.width, a.height), a.width, a.height)
}

func (a *Animator) setVisible(visible bool) {
	if a.state == StateDisposed {
		return
	}
	a.visible = visible
	switch {
	case visible && a.state == StateIdle:
		a.schedule()
	case !visible && a.state == StateScheduled:
		a.cancel()
	}
}

// ────────────────────────────────────────────────────────────
// Frame loop
// ────────────────────────────────────────────────────────────

func (a *Animator) schedule() {
	a.gen++
	gen := a.gen
	a.frame = a.sched.RequestFrame(func(now float64) {
		if gen != a.gen {
			return
		}
		a.onFrame(now)
	})
	a.state = StateScheduled
}

func (a *Animator) cancel() {
	if a.frame != 0 {
		a.sched.CancelFrame(a.frame)
		a.frame = 0
	}
	a.gen++
	a.state = StateIdle
}

func (a *Animator) onFrame(now float64) {
	if a.state != StateScheduled {
		return
	}
	a.frame = 0
	a.state = StateRunning
	a.counters.Frames++

	minFrame := ParamsFor(a.Tier()).MinFrameMs
	if a.drawn && now-a.lastDrawAt < minFrame {
		a.counters.Skipped++
	} else {
		a.drawn = true
		a.lastDrawAt = now
		a.draw(now)
		a.counters.Drawn++
	}

	if a.state == StateDisposed {
		return
	}
	a.state = StateIdle
	if a.visible {
		a.schedule()
	}
}

// draw renders one frame: glow, stars, at most one spawn, meteors.
func (a *Animator) draw(now float64) {
	p := PaletteFor(a.dark)
	w, h := float64(a.width), float64(a.height)

	a.surface.Clear()
	a.surface.FillRadialGradient(w*0.45, h*0.35, math.Max(w, h)*0.9, p.Glow)

	for i := range a.stars {
		s := &a.stars[i]
		s.Step(a.rnd, a.width, a.height)
		a.surface.FillCircle(s.X, s.Y, s.Radius, p.Star.WithAlpha(s.Alpha(now, p.StarIntensity)))
	}

	if now >= a.nextMeteorAt && a.width > 0 && a.height > 0 {
		a.meteors = append(a.meteors, SpawnMeteor(a.rnd, now, a.width, a.height))
		a.counters.Spawned++
		a.nextMeteorAt = now + nextMeteorDelay(a.rnd)
	}

	ac := resolveAccent(a.tokens, p.GlowAlpha)
	for i := len(a.meteors) - 1; i >= 0; i-- {
		m := &a.meteors[i]
		m.Life = m.AgeFraction(now)
		if m.Life >= 1 {
			a.meteors = append(a.meteors[:i], a.meteors[i+1:]...)
			a.counters.Expired++
			continue
		}

		m.Advance()
		alpha := Fade(m.Life) * p.MeteorCeiling
		tx, ty := m.Tail()

		a.surface.StrokeLine(tx, ty, m.X, m.Y, Stroke{
			Width: p.LineWidth,
			Blur:  p.Blur,
			Glow:  ac.glow,
			Gradient: []ColorStop{
				{Offset: 0, Color: Transparent},
				{Offset: 0.6, Color: ac.color.WithAlpha(alpha * 0.45)},
				{Offset: 1, Color: ac.color.WithAlpha(alpha)},
			},
		})
		a.surface.FillCircle(m.X, m.Y, p.HeadRadius, ac.color.WithAlpha(alpha))
	}
}

// ────────────────────────────────────────────────────────────
// Accessors
// ────────────────────────────────────────────────────────────

// Active reports whether the animator was set up successfully and has
// not been disposed.
func (a *Animator) Active() bool {
	return a.state != StateDisposed
}

// State returns the control loop state.
func (a *Animator) State() State { return a.state }

// Tier returns the tier in effect for the current surface size.
func (a *Animator) Tier() Tier {
	return ResolveTier(a.quality, a.width, a.height)
}

// Size returns the surface's pixel dimensions.
func (a *Animator) Size() (width, height int) {
	return a.width, a.height
}

// Dark returns the cached theme flag.
func (a *Animator) Dark() bool { return a.dark }

// Visible reports whether the surface is currently considered on-screen.
func (a *Animator) Visible() bool { return a.visible }

// Stars returns a copy of the star population.
func (a *Animator) Stars() []Star {
	return append([]Star(nil), a.stars...)
}

// Meteors returns a copy of the active meteors.
func (a *Animator) Meteors() []Meteor {
	return append([]Meteor(nil), a.meteors...)
}

// Stats returns the current counters and population sizes.
func (a *Animator) Stats() Stats {
	s := a.counters
	s.State = a.state
	s.Tier = a.Tier()
	s.Width, s.Height = a.width, a.height
	s.Visible = a.visible
	s.Dark = a.dark
	s.Stars = len(a.stars)
	s.Meteors = len(a.meteors)
	s.LastDrawAt = a.lastDrawAt
	return s
}
