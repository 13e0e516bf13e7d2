package headless

import (
	"strings"
	"testing"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
	"github.com/muesli/termenv"
)

var (
	_ galaxy.Host      = (*Host)(nil)
	_ galaxy.Scheduler = (*Scheduler)(nil)
)

func TestSchedulerStepOrder(t *testing.T) {
	s := NewScheduler(100)
	var order []int
	s.RequestFrame(func(now float64) { order = append(order, 1) })
	id := s.RequestFrame(func(now float64) { order = append(order, 2) })
	s.RequestFrame(func(now float64) {
		if now != 116 {
			t.Errorf("expected now=116, got %v", now)
		}
		order = append(order, 3)
		s.RequestFrame(func(float64) { order = append(order, 4) })
	})
	s.CancelFrame(id)

	if fired := s.Step(16); fired != 2 {
		t.Fatalf("expected 2 callbacks, got %d", fired)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("unexpected order %v", order)
	}
	if s.Pending() != 1 {
		t.Errorf("expected the nested request to wait, pending=%d", s.Pending())
	}
	s.Step(16)
	if len(order) != 3 || order[2] != 4 {
		t.Errorf("nested request did not fire on the next step: %v", order)
	}
}

func TestHostObservers(t *testing.T) {
	h := NewHost(800, 600)
	resized, shown := 0, 0
	o1 := h.ObserveResize(func() { resized++ })
	h.ObserveVisibility(func(v bool) {
		if v {
			shown++
		}
	})

	h.SetBounds(1024, 768)
	h.SetVisible(true)
	if w, hh, ok := h.Bounds(); !ok || w != 1024 || hh != 768 {
		t.Errorf("unexpected bounds %v x %v (%v)", w, hh, ok)
	}
	if resized != 1 || shown != 1 {
		t.Errorf("expected one notification each, got %d / %d", resized, shown)
	}

	o1.Disconnect()
	h.SetBounds(10, 10)
	if resized != 1 {
		t.Error("disconnected observer was notified")
	}
	if h.Observers() != 1 {
		t.Errorf("expected 1 observer left, got %d", h.Observers())
	}

	h.Detach()
	if _, _, ok := h.Bounds(); ok {
		t.Error("expected no bounds after Detach")
	}
}

func TestSessionDeterministic(t *testing.T) {
	run := func() []galaxy.Star {
		s := NewSession(SessionConfig{Width: 1280, Height: 720, Seed: 7})
		defer s.Close()
		s.Run(120, 60)
		return s.Animator.Stars()
	}
	a, b := run(), run()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("unexpected star counts %d / %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs between identical runs", i)
		}
	}
}

func TestSessionThrottlesToTier(t *testing.T) {
	// 25ms ticks against the low tier's 27.8ms minimum: every second
	// tick draws.
	s := NewSession(SessionConfig{Width: 1920, Height: 1080, Quality: galaxy.QualityLow, Seed: 1})
	defer s.Close()
	s.Run(300, 40)

	st := s.Animator.Stats()
	if st.Frames != 300 {
		t.Fatalf("expected 300 frame callbacks, got %d", st.Frames)
	}
	if st.Drawn != 150 || st.Skipped != 150 {
		t.Errorf("expected 150 drawn / 150 skipped, got %d / %d", st.Drawn, st.Skipped)
	}

	rep := s.Report()
	if rep.DrawnFrames != 150 {
		t.Errorf("report drawn = %d", rep.DrawnFrames)
	}
	if rep.FPS != 20 {
		t.Errorf("expected 20 fps, got %.2f", rep.FPS)
	}
	if rep.Stars != 120 || rep.Tier != "low" || rep.Quality != "low" {
		t.Errorf("unexpected surface summary %+v", rep)
	}
	if len(rep.Jank) != 0 {
		t.Errorf("expected no jank for a steady run, got %v", rep.Jank)
	}
}

func TestSessionMeteorsEventuallySpawn(t *testing.T) {
	s := NewSession(SessionConfig{Width: 800, Height: 600, Seed: 11})
	defer s.Close()
	// First meteor is due within 7s; run 10s.
	s.Run(600, 60)
	if s.Animator.Stats().Spawned == 0 {
		t.Error("expected at least one meteor after 10s")
	}
}

func TestSessionHiddenStopsFrames(t *testing.T) {
	s := NewSession(SessionConfig{Width: 800, Height: 600, Seed: 3})
	defer s.Close()
	s.Run(10, 60)
	s.Host.SetVisible(false)
	before := s.Animator.Stats().Frames
	s.Run(50, 60)
	if got := s.Animator.Stats().Frames; got != before {
		t.Errorf("frames advanced while hidden: %d -> %d", before, got)
	}
	if s.Sched.Pending() != 0 {
		t.Errorf("expected no pending request while hidden, got %d", s.Sched.Pending())
	}

	s.Host.SetVisible(true)
	s.Run(5, 60)
	if s.Animator.Stats().Frames != before+5 {
		t.Error("frames did not resume after becoming visible")
	}
}

func TestSessionCloseReleasesEverything(t *testing.T) {
	s := NewSession(SessionConfig{Width: 800, Height: 600})
	s.Run(3, 60)
	s.Close()
	if s.Host.Observers() != 0 {
		t.Errorf("expected host observers released, got %d", s.Host.Observers())
	}
	if s.Theme.Observers() != 0 {
		t.Errorf("expected theme observer released, got %d", s.Theme.Observers())
	}
	if s.Sched.Pending() != 0 {
		t.Errorf("expected pending frame cancelled, got %d", s.Sched.Pending())
	}
}

func TestSessionSnapshotANSI(t *testing.T) {
	s := NewSession(SessionConfig{
		Width:  40 * 8,
		Height: 12 * 16,
		Mode:   theme.Light,
		Seed:   5,
		Canvas: raster.ForCells(8, 16),
	})
	defer s.Close()
	s.Run(4, 60)

	out := s.Canvas.ANSI(raster.Background("#f6f8fa"), termenv.TrueColor)
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 40 {
		t.Errorf("expected 40 cells per row, got %d", n)
	}
}
