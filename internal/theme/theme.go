// Package theme owns the process-wide light/dark flag.
//
// A Signal is the single source of truth for the current mode. Renderers
// subscribe to it and never write to it; only the application shell (key
// bindings, the CLI, the persisted setting) calls Set or Toggle. The mode
// is persisted under the "theme" settings key and defaults to dark when
// nothing has been stored yet.
package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// ErrUnknownMode is returned by ParseMode for unrecognized values.
var ErrUnknownMode = errors.New("unknown theme mode")

// Mode is the persisted representation of the flag.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// ParseMode accepts "dark" or "light", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Dark, Light:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ModeOf maps a dark flag to its Mode.
func ModeOf(dark bool) Mode {
	if dark {
		return Dark
	}
	return Light
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool { return m == Dark }

// Backdrop is the solid color a host composites the sky onto.
func (m Mode) Backdrop() string {
	if m == Light {
		return "#f6f8fa"
	}
	return "#0d1117"
}

// ────────────────────────────────────────────────────────────
// Signal
// ────────────────────────────────────────────────────────────

// Signal is an observable dark/light flag. Observers are called
// synchronously from Set, outside the lock, and only on actual changes.
type Signal struct {
	mu        sync.Mutex
	dark      bool
	nextID    int
	observers map[int]func(dark bool)
}

// NewSignal creates a signal with the given initial mode.
func NewSignal(m Mode) *Signal {
	return &Signal{
		dark:      m.IsDark(),
		observers: make(map[int]func(bool)),
	}
}

// Dark returns the current flag.
func (s *Signal) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Mode returns the current flag as a Mode.
func (s *Signal) Mode() Mode {
	return ModeOf(s.Dark())
}

// Set updates the flag and notifies observers if it changed.
func (s *Signal) Set(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	fns := make([]func(bool), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Toggle flips the flag and returns the new value.
func (s *Signal) Toggle() bool {
	dark := !s.Dark()
	s.Set(dark)
	return dark
}

// Observe registers fn for change notifications.
func (s *Signal) Observe(fn func(dark bool)) galaxy.Observer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers[id] = fn

	var once sync.Once
	return galaxy.ObserverFunc(func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	})
}

// Observers returns the number of live subscriptions.
func (s *Signal) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}
