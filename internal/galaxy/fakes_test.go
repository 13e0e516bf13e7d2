package galaxy

import (
	"math/rand/v2"
	"sort"
)

// ────────────────────────────────────────────────────────────
// Test doubles for the host contracts
// ────────────────────────────────────────────────────────────

type fakeSurface struct {
	width, height int
	sizes         int

	clears    int
	gradients int
	circles   []RGBA
	lines     []Stroke
}

func (s *fakeSurface) SetSize(w, h int) {
	s.width, s.height = w, h
	s.sizes++
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *fakeSurface) FillRadialGradient(cx, cy, r float64, stops []ColorStop) { s.gradients++ }

func (s *fakeSurface) FillCircle(x, y, r float64, c RGBA) { s.circles = append(s.circles, c) }

func (s *fakeSurface) StrokeLine(x0, y0, x1, y1 float64, st Stroke) { s.lines = append(s.lines, st) }

// drawCalls counts every drawing operation since construction. Clear is
// always the first call of a drawn frame, so it is a frame counter too.
func (s *fakeSurface) drawCalls() int { return s.clears }

type fakeHost struct {
	width, height float64
	present       bool

	resize      map[int]func()
	visibility  map[int]func(bool)
	nextID      int
	disconnects int
}

func newFakeHost(w, h float64) *fakeHost {
	return &fakeHost{
		width: w, height: h, present: true,
		resize:     map[int]func(){},
		visibility: map[int]func(bool){},
	}
}

func (h *fakeHost) Bounds() (float64, float64, bool) { return h.width, h.height, h.present }

func (h *fakeHost) ObserveResize(fn func()) Observer {
	h.nextID++
	id := h.nextID
	h.resize[id] = fn
	return ObserverFunc(func() {
		if _, ok := h.resize[id]; ok {
			delete(h.resize, id)
			h.disconnects++
		}
	})
}

func (h *fakeHost) ObserveVisibility(fn func(bool)) Observer {
	h.nextID++
	id := h.nextID
	h.visibility[id] = fn
	return ObserverFunc(func() {
		if _, ok := h.visibility[id]; ok {
			delete(h.visibility, id)
			h.disconnects++
		}
	})
}

func (h *fakeHost) setBounds(w, hh float64) {
	h.width, h.height = w, hh
	for _, fn := range h.resize {
		fn()
	}
}

func (h *fakeHost) setVisible(v bool) {
	for _, fn := range h.visibility {
		fn(v)
	}
}

type fakeScheduler struct {
	now       float64
	nextID    FrameID
	pending   map[FrameID]FrameFunc
	cancelled int
}

func newFakeScheduler(now float64) *fakeScheduler {
	return &fakeScheduler{now: now, pending: map[FrameID]FrameFunc{}}
}

func (s *fakeScheduler) Now() float64 { return s.now }

func (s *fakeScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.nextID++
	s.pending[s.nextID] = fn
	return s.nextID
}

func (s *fakeScheduler) CancelFrame(id FrameID) {
	if _, ok := s.pending[id]; ok {
		delete(s.pending, id)
		s.cancelled++
	}
}

// tick advances the clock by dt and fires the requests pending before it.
func (s *fakeScheduler) tick(dt float64) {
	s.now += dt
	due := s.pending
	s.pending = map[FrameID]FrameFunc{}
	ids := make([]FrameID, 0, len(due))
	for id := range due {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		due[id](s.now)
	}
}

type fakeTheme struct {
	dark      bool
	observers map[int]func(bool)
	nextID    int
	detached  int
}

func newFakeTheme(dark bool) *fakeTheme {
	return &fakeTheme{dark: dark, observers: map[int]func(bool){}}
}

func (t *fakeTheme) Dark() bool { return t.dark }

func (t *fakeTheme) Observe(fn func(bool)) Observer {
	t.nextID++
	id := t.nextID
	t.observers[id] = fn
	return ObserverFunc(func() {
		if _, ok := t.observers[id]; ok {
			delete(t.observers, id)
			t.detached++
		}
	})
}

func (t *fakeTheme) set(dark bool) {
	t.dark = dark
	for _, fn := range t.observers {
		fn(dark)
	}
}

// seededRand returns a deterministic [0,1) source.
func seededRand(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
}

// constRand always returns v.
func constRand(v float64) func() float64 {
	return func() float64 { return v }
}
