package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/pkg/frameclock"
)

// frameMsg delivers a frame request's tick back to Update.
type frameMsg struct {
	id galaxy.FrameID
	at time.Time
}

// termHost adapts the bubbletea event loop to the animator's Host and
// Scheduler. Everything runs inside Update, so frame requests made by
// the animator are collected and turned into tea.Tick commands once
// Update returns.
type termHost struct {
	clock    *frameclock.Clock
	interval time.Duration

	cellW, cellH float64
	cols, rows   int

	focused bool
	paused  bool
	visible bool

	nextObs    int
	resizeObs  map[int]func()
	visibleObs map[int]func(bool)

	nextFrame galaxy.FrameID
	pending   map[galaxy.FrameID]galaxy.FrameFunc
	queued    []galaxy.FrameID
}

func newTermHost(fps int, cellW, cellH float64) *termHost {
	return &termHost{
		clock:      frameclock.New(),
		interval:   frameclock.Interval(fps),
		cellW:      cellW,
		cellH:      cellH,
		focused:    true,
		visible:    true,
		resizeObs:  make(map[int]func()),
		visibleObs: make(map[int]func(bool)),
		pending:    make(map[galaxy.FrameID]galaxy.FrameFunc),
	}
}

// ── galaxy.Host ──

// Bounds maps the body cells to logical pixels.
func (h *termHost) Bounds() (width, height float64, ok bool) {
	if h.cols <= 0 || h.rows <= 0 {
		return 0, 0, false
	}
	return float64(h.cols) * h.cellW, float64(h.rows) * h.cellH, true
}

func (h *termHost) ObserveResize(fn func()) galaxy.Observer {
	h.nextObs++
	id := h.nextObs
	h.resizeObs[id] = fn
	return galaxy.ObserverFunc(func() { delete(h.resizeObs, id) })
}

// ObserveVisibility registers fn and reports a hidden host to it at
// once, so an animator started after a blur or pause stays idle.
func (h *termHost) ObserveVisibility(fn func(bool)) galaxy.Observer {
	h.nextObs++
	id := h.nextObs
	h.visibleObs[id] = fn
	if !h.visible {
		fn(false)
	}
	return galaxy.ObserverFunc(func() { delete(h.visibleObs, id) })
}

// ── galaxy.Scheduler ──

func (h *termHost) Now() float64 { return h.clock.Now() }

func (h *termHost) RequestFrame(fn galaxy.FrameFunc) galaxy.FrameID {
	h.nextFrame++
	h.pending[h.nextFrame] = fn
	h.queued = append(h.queued, h.nextFrame)
	return h.nextFrame
}

func (h *termHost) CancelFrame(id galaxy.FrameID) {
	delete(h.pending, id)
}

// ── Event plumbing ──

// setSize updates the body size in cells and notifies resize observers
// when it changed.
func (h *termHost) setSize(cols, rows int) {
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	if _, _, ok := h.Bounds(); !ok {
		return
	}
	for _, id := range sortedIDs(h.resizeObs) {
		if fn, ok := h.resizeObs[id]; ok {
			fn()
		}
	}
}

func (h *termHost) setFocused(focused bool) {
	h.focused = focused
	h.updateVisibility()
}

func (h *termHost) setPaused(paused bool) {
	h.paused = paused
	h.updateVisibility()
}

func (h *termHost) updateVisibility() {
	visible := h.focused && !h.paused
	if visible == h.visible {
		return
	}
	h.visible = visible
	for _, id := range sortedIDs(h.visibleObs) {
		if fn, ok := h.visibleObs[id]; ok {
			fn(visible)
		}
	}
}

// fire runs a pending request. Cancelled requests are ignored.
func (h *termHost) fire(id galaxy.FrameID, at time.Time) bool {
	fn, ok := h.pending[id]
	if !ok {
		return false
	}
	delete(h.pending, id)
	fn(h.clock.At(at))
	return true
}

// ticks turns requests made since the last call into tick commands.
func (h *termHost) ticks() []tea.Cmd {
	if len(h.queued) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, id := range h.queued {
		if _, ok := h.pending[id]; !ok {
			continue
		}
		id := id
		cmds = append(cmds, tea.Tick(h.interval, func(t time.Time) tea.Msg {
			return frameMsg{id: id, at: t}
		}))
	}
	h.queued = h.queued[:0]
	return cmds
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
