package headless

import (
	"math/rand/v2"

	"github.com/Mr-Dark-debug/galaxy/internal/framestats"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
)

// SessionConfig describes one headless run.
type SessionConfig struct {
	Width, Height float64
	Quality       galaxy.Quality
	Mode          theme.Mode
	Seed          uint64
	Tokens        galaxy.Tokens

	// Canvas defaults to a 1:1 raster.Canvas.
	Canvas *raster.Canvas
	// Start is the scheduler's initial clock in ms.
	Start float64
}

// Session wires an animator to a headless host, scheduler and canvas,
// and records frame statistics while it runs.
type Session struct {
	Canvas   *raster.Canvas
	Host     *Host
	Sched    *Scheduler
	Theme    *theme.Signal
	Animator *galaxy.Animator
	Stats    *framestats.Recorder

	quality galaxy.Quality
}

// SeededRand returns a deterministic [0,1) source.
func SeededRand(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
}

// NewSession starts an animator for cfg. The first frame is queued but
// not fired.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Canvas == nil {
		cfg.Canvas = raster.New()
	}
	if cfg.Mode == "" {
		cfg.Mode = theme.Dark
	}
	s := &Session{
		Canvas:  cfg.Canvas,
		Host:    NewHost(cfg.Width, cfg.Height),
		Sched:   NewScheduler(cfg.Start),
		Theme:   theme.NewSignal(cfg.Mode),
		Stats:   framestats.NewRecorder(0),
		quality: cfg.Quality,
	}
	s.Animator = galaxy.New(s.Canvas, s.Host, s.Sched, s.Theme, galaxy.Options{
		Quality: cfg.Quality,
		Rand:    SeededRand(cfg.Seed),
		Tokens:  cfg.Tokens,
	})
	return s
}

// Run steps the scheduler frames times at hz ticks per second.
func (s *Session) Run(frames int, hz float64) {
	if hz <= 0 {
		hz = 60
	}
	dt := 1000 / hz
	for i := 0; i < frames; i++ {
		s.Sched.Step(dt)
		s.Stats.Observe(s.Animator.Stats())
	}
}

// Report summarizes the run so far.
func (s *Session) Report() *framestats.Report {
	return s.Stats.Report(s.quality)
}

// Close disposes the animator.
func (s *Session) Close() {
	s.Animator.Dispose()
}
