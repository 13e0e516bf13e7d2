package galaxy

import (
	"reflect"
	"testing"
)

type rig struct {
	anim    *Animator
	surface *fakeSurface
	host    *fakeHost
	sched   *fakeScheduler
	theme   *fakeTheme
}

func newRig(w, h float64, opts Options) *rig {
	r := &rig{
		surface: &fakeSurface{},
		host:    newFakeHost(w, h),
		sched:   newFakeScheduler(1000),
		theme:   newFakeTheme(true),
	}
	if opts.Rand == nil {
		opts.Rand = seededRand(1)
	}
	r.anim = New(r.surface, r.host, r.sched, r.theme, opts)
	return r
}

// TestNewSeedsAndSchedules verifies the initial setup: surface sized to
// the container, stars seeded, one frame pending.
func TestNewSeedsAndSchedules(t *testing.T) {
	r := newRig(1920.7, 1080.2, Options{})

	if !r.anim.Active() {
		t.Fatal("expected an active animator")
	}
	if r.surface.width != 1920 || r.surface.height != 1080 {
		t.Errorf("expected surface 1920x1080, got %dx%d", r.surface.width, r.surface.height)
	}
	if got := len(r.anim.Stars()); got != 160 {
		t.Errorf("expected 160 stars, got %d", got)
	}
	if r.anim.State() != StateScheduled || len(r.sched.pending) != 1 {
		t.Errorf("expected one scheduled frame, state=%s pending=%d", r.anim.State(), len(r.sched.pending))
	}
}

func TestResizeReseeds(t *testing.T) {
	r := newRig(1920, 1080, Options{})
	before := r.anim.Stars()

	r.host.setBounds(320, 480)
	if r.anim.Tier() != TierLow {
		t.Errorf("expected low tier after shrinking, got %s", r.anim.Tier())
	}
	after := r.anim.Stars()
	if len(after) != 45 {
		t.Fatalf("expected 45 stars after resize, got %d", len(after))
	}
	if reflect.DeepEqual(before[:45], after) {
		t.Error("expected a fresh star set after resize")
	}
	for i, s := range after {
		if s.X >= 320 || s.Y >= 480 {
			t.Fatalf("star %d at (%.1f, %.1f) outside 320x480", i, s.X, s.Y)
		}
	}

	// Degenerate layout boxes clamp to 1x1.
	r.host.setBounds(0.4, 0)
	if w, h := r.anim.Size(); w != 1 || h != 1 {
		t.Errorf("expected 1x1 surface, got %dx%d", w, h)
	}
	if got := len(r.anim.Stars()); got != 45 {
		t.Errorf("expected minimum 45 stars on 1x1, got %d", got)
	}
}

// TestFrameThrottle checks the normal tier's 20ms minimum interval.
func TestFrameThrottle(t *testing.T) {
	r := newRig(1920, 1080, Options{})

	r.sched.tick(16) // first frame always draws
	r.sched.tick(10) // 10ms since last draw: skipped
	r.sched.tick(10) // 20ms since last draw: drawn

	st := r.anim.Stats()
	if st.Frames != 3 || st.Drawn != 2 || st.Skipped != 1 {
		t.Errorf("expected frames=3 drawn=2 skipped=1, got %+v", st)
	}
	if r.surface.drawCalls() != 2 {
		t.Errorf("expected 2 drawn frames on the surface, got %d", r.surface.drawCalls())
	}
	if len(r.sched.pending) != 1 {
		t.Errorf("expected the loop to stay armed, pending=%d", len(r.sched.pending))
	}
}

func TestLowTierThrottle(t *testing.T) {
	r := newRig(1920, 1080, Options{Quality: QualityLow})

	r.sched.tick(16)
	r.sched.tick(20) // under 27.8ms
	r.sched.tick(8)  // 28ms since last draw

	if st := r.anim.Stats(); st.Drawn != 2 || st.Skipped != 1 {
		t.Errorf("expected drawn=2 skipped=1 on low tier, got %+v", st)
	}
}

// TestVisibilityGating verifies zero draw calls while hidden and a
// resumed draw on the first tick after becoming visible again.
func TestVisibilityGating(t *testing.T) {
	r := newRig(1920, 1080, Options{})
	r.sched.tick(16)
	drawn := r.surface.drawCalls()

	r.host.setVisible(false)
	if r.anim.State() != StateIdle {
		t.Errorf("expected idle while hidden, got %s", r.anim.State())
	}
	if len(r.sched.pending) != 0 || r.sched.cancelled != 1 {
		t.Errorf("expected the pending frame to be cancelled, pending=%d cancelled=%d",
			len(r.sched.pending), r.sched.cancelled)
	}

	for i := 0; i < 50; i++ {
		r.sched.tick(16)
	}
	if r.surface.drawCalls() != drawn {
		t.Errorf("expected no drawing while hidden, got %d extra frames", r.surface.drawCalls()-drawn)
	}

	r.host.setVisible(true)
	if r.anim.State() != StateScheduled {
		t.Errorf("expected scheduled after becoming visible, got %s", r.anim.State())
	}
	r.sched.tick(16)
	if r.surface.drawCalls() != drawn+1 {
		t.Errorf("expected drawing to resume within one tick, got %d frames", r.surface.drawCalls()-drawn)
	}

	// Repeated notifications never double-schedule.
	r.host.setVisible(true)
	r.host.setVisible(true)
	if len(r.sched.pending) != 1 {
		t.Errorf("expected exactly one pending frame, got %d", len(r.sched.pending))
	}
}

// TestMeteorExpiry checks that no meteor survives an update pass once
// its age fraction reaches 1.
func TestMeteorExpiry(t *testing.T) {
	r := newRig(1920, 1080, Options{Rand: constRand(0)})

	// With r=0: first spawn at start+2500, ttl 900ms, next spawn +3200.
	sawMeteor := false
	for i := 0; i < 400; i++ {
		r.sched.tick(20)
		for _, m := range r.anim.Meteors() {
			sawMeteor = true
			if m.AgeFraction(r.sched.now) >= 1 {
				t.Fatalf("meteor created at %.0f still active at %.0f", m.CreatedAt, r.sched.now)
			}
		}
	}
	if !sawMeteor {
		t.Fatal("expected at least one meteor in 8s")
	}

	st := r.anim.Stats()
	if st.Spawned == 0 || st.Expired == 0 {
		t.Errorf("expected spawns and expiries, got %+v", st)
	}
	if st.Spawned-st.Expired != st.Meteors {
		t.Errorf("each meteor must be removed exactly once: spawned=%d expired=%d active=%d",
			st.Spawned, st.Expired, st.Meteors)
	}
}

// TestOneSpawnPerFrame jumps far past the spawn deadline and expects a
// single spawn decision.
func TestOneSpawnPerFrame(t *testing.T) {
	r := newRig(1920, 1080, Options{Rand: constRand(0)})

	r.sched.tick(100000)
	if got := r.anim.Stats().Spawned; got != 1 {
		t.Fatalf("expected exactly one spawn, got %d", got)
	}
	if got := len(r.surface.lines); got != 1 {
		t.Errorf("expected one meteor stroke, got %d", got)
	}
}

// TestThemeSwitchOnlyChangesColors runs two identical animators and
// flips one to light mode midway. Positions and counts must match.
func TestThemeSwitchOnlyChangesColors(t *testing.T) {
	a := newRig(1280, 800, Options{Rand: seededRand(3)})
	b := newRig(1280, 800, Options{Rand: seededRand(3)})

	for i := 0; i < 450; i++ {
		if i == 100 {
			b.theme.set(false)
			if b.anim.Dark() {
				t.Fatal("expected the cached flag to update synchronously")
			}
		}
		a.sched.tick(20)
		b.sched.tick(20)

		if !reflect.DeepEqual(a.anim.Stars(), b.anim.Stars()) {
			t.Fatalf("frame %d: star positions diverged after theme switch", i)
		}
		if !reflect.DeepEqual(a.anim.Meteors(), b.anim.Meteors()) {
			t.Fatalf("frame %d: meteors diverged after theme switch", i)
		}
	}

	if a.anim.Stats().Spawned == 0 {
		t.Fatal("expected meteors during the run")
	}

	starA, starB := a.surface.circles[0], b.surface.circles[0]
	if starA.R != 255 || starB.R != 0 {
		t.Errorf("expected white stars in dark mode and black in light, got %v / %v", starA, starB)
	}
	if starB.A >= starA.A {
		t.Errorf("expected fainter stars in light mode, got %.3f >= %.3f", starB.A, starA.A)
	}
}

func TestAccentToken(t *testing.T) {
	r := newRig(1920, 1080, Options{
		Rand:   constRand(0),
		Tokens: TokenMap{PrimaryToken: "#ff0000"},
	})
	r.sched.tick(5000)

	if len(r.surface.lines) != 1 {
		t.Fatalf("expected one meteor stroke, got %d", len(r.surface.lines))
	}
	st := r.surface.lines[0]
	head := st.Gradient[len(st.Gradient)-1].Color
	if head.R != 255 || head.G != 0 || head.B != 0 {
		t.Errorf("expected red gradient head, got %v", head)
	}
	if st.Glow.A != 0.55 {
		t.Errorf("expected dark-mode glow alpha 0.55, got %.2f", st.Glow.A)
	}

	// Missing token falls back to the default accent.
	f := newRig(1920, 1080, Options{Rand: constRand(0)})
	f.sched.tick(5000)
	if got := f.surface.lines[0].Glow; got != defaultAccentGlow {
		t.Errorf("expected fallback glow %v, got %v", defaultAccentGlow, got)
	}
}

// TestDispose verifies that all three observers are released and the
// pending frame is cancelled.
func TestDispose(t *testing.T) {
	r := newRig(1920, 1080, Options{})
	pending := r.sched.pending[r.sched.nextID]

	r.anim.Dispose()
	if r.anim.State() != StateDisposed || r.anim.Active() {
		t.Errorf("expected disposed state, got %s", r.anim.State())
	}
	if r.host.disconnects != 2 || r.theme.detached != 1 {
		t.Errorf("expected resize, visibility and theme observers released, host=%d theme=%d",
			r.host.disconnects, r.theme.detached)
	}
	if len(r.sched.pending) != 0 {
		t.Errorf("expected no pending frames, got %d", len(r.sched.pending))
	}

	// A stale callback delivered late must not draw.
	pending(r.sched.now + 100)
	if r.surface.drawCalls() != 0 {
		t.Errorf("expected no drawing after dispose, got %d frames", r.surface.drawCalls())
	}

	r.anim.Dispose()
	if r.host.disconnects != 2 {
		t.Errorf("expected Dispose to be idempotent, disconnects=%d", r.host.disconnects)
	}
}

func TestInertAnimator(t *testing.T) {
	host := newFakeHost(800, 600)
	sched := newFakeScheduler(0)

	a := New(nil, host, sched, nil, Options{})
	if a.Active() {
		t.Error("expected an inert animator without a surface")
	}
	if len(sched.pending) != 0 || len(host.resize) != 0 {
		t.Error("expected no setup without a surface")
	}
	a.Dispose()

	surface := &fakeSurface{}
	host.present = false
	a = New(surface, host, sched, newFakeTheme(true), Options{})
	if a.Active() || surface.sizes != 0 {
		t.Error("expected an inert animator without a container")
	}

	if a := New(surface, nil, sched, nil, Options{}); a.Active() {
		t.Error("expected an inert animator without a host")
	}
	if a := New(surface, newFakeHost(1, 1), nil, nil, Options{}); a.Active() {
		t.Error("expected an inert animator without a scheduler")
	}
}
