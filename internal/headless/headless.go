// Package headless drives the animator without a window or terminal.
//
// Host reports fixed bounds that callers change explicitly, and
// Scheduler only fires frame requests when stepped. Together they make
// a run fully reproducible, which `galaxyctl bench`, `galaxyctl
// snapshot` and the package tests rely on.
package headless

import (
	"sort"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// ────────────────────────────────────────────────────────────
// Host
// ────────────────────────────────────────────────────────────

// Host is a container with caller-controlled bounds and visibility.
type Host struct {
	width, height float64
	attached      bool

	nextID     int
	resize     map[int]func()
	visibility map[int]func(bool)
}

// NewHost returns an attached host of the given size.
func NewHost(width, height float64) *Host {
	return &Host{
		width:      width,
		height:     height,
		attached:   true,
		resize:     make(map[int]func()),
		visibility: make(map[int]func(bool)),
	}
}

// Bounds reports the container size. ok is false once detached.
func (h *Host) Bounds() (width, height float64, ok bool) {
	return h.width, h.height, h.attached
}

// ObserveResize registers fn for SetBounds calls.
func (h *Host) ObserveResize(fn func()) galaxy.Observer {
	h.nextID++
	id := h.nextID
	h.resize[id] = fn
	return galaxy.ObserverFunc(func() { delete(h.resize, id) })
}

// ObserveVisibility registers fn for SetVisible calls.
func (h *Host) ObserveVisibility(fn func(bool)) galaxy.Observer {
	h.nextID++
	id := h.nextID
	h.visibility[id] = fn
	return galaxy.ObserverFunc(func() { delete(h.visibility, id) })
}

// SetBounds changes the container size and notifies resize observers.
func (h *Host) SetBounds(width, height float64) {
	h.width, h.height = width, height
	for _, id := range sortedKeys(h.resize) {
		if fn, ok := h.resize[id]; ok {
			fn()
		}
	}
}

// SetVisible notifies visibility observers.
func (h *Host) SetVisible(visible bool) {
	for _, id := range sortedKeys(h.visibility) {
		if fn, ok := h.visibility[id]; ok {
			fn(visible)
		}
	}
}

// Detach makes Bounds report no container.
func (h *Host) Detach() {
	h.attached = false
}

// Observers returns the number of connected observers.
func (h *Host) Observers() int {
	return len(h.resize) + len(h.visibility)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ────────────────────────────────────────────────────────────
// Scheduler
// ────────────────────────────────────────────────────────────

// Scheduler holds frame requests until the caller steps time forward.
type Scheduler struct {
	now     float64
	nextID  galaxy.FrameID
	pending map[galaxy.FrameID]galaxy.FrameFunc
}

// NewScheduler returns a scheduler whose clock starts at start ms.
func NewScheduler(start float64) *Scheduler {
	return &Scheduler{
		now:     start,
		pending: make(map[galaxy.FrameID]galaxy.FrameFunc),
	}
}

// Now returns the current time in ms.
func (s *Scheduler) Now() float64 { return s.now }

// RequestFrame queues fn for the next Step.
func (s *Scheduler) RequestFrame(fn galaxy.FrameFunc) galaxy.FrameID {
	s.nextID++
	s.pending[s.nextID] = fn
	return s.nextID
}

// CancelFrame drops a queued request. Unknown ids are ignored.
func (s *Scheduler) CancelFrame(id galaxy.FrameID) {
	delete(s.pending, id)
}

// Pending returns the number of queued requests.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Advance moves the clock forward without firing anything.
func (s *Scheduler) Advance(ms float64) {
	s.now += ms
}

// Step advances the clock by ms and fires every request queued before
// the step, in request order. Requests made by the callbacks wait for
// the next step. It returns the number of callbacks fired.
func (s *Scheduler) Step(ms float64) int {
	s.now += ms
	if len(s.pending) == 0 {
		return 0
	}
	ids := make([]galaxy.FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fired := 0
	for _, id := range ids {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn(s.now)
		fired++
	}
	return fired
}
