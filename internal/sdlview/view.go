// Package sdlview hosts the animator in an SDL2 window.
//
// The window is the container: its size drives resize observers, and
// hide, minimize and restore events drive visibility. Frames run on
// the SDL main loop through a headless.Scheduler stepped by wall-clock
// time, and each drawn frame is uploaded to a streaming ABGR8888
// texture.
package sdlview

import (
	"fmt"
	"log"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Mr-Dark-debug/galaxy/internal/framestats"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/headless"
	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
	"github.com/Mr-Dark-debug/galaxy/pkg/frameclock"
)

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int32

	Quality galaxy.Quality
	Tokens  galaxy.Tokens
	FPS     int

	// Store persists theme toggles and is polled for outside changes.
	// It may be nil.
	Store  theme.Settings
	Signal *theme.Signal

	ThemePoll time.Duration
}

// View owns the SDL window, renderer and texture.
type View struct {
	opts Options

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
	pixels   []byte

	canvas *raster.Canvas
	host   *headless.Host
	sched  *headless.Scheduler
	clock  *frameclock.Clock
	anim   *galaxy.Animator
	stats  *framestats.Recorder

	paused    bool
	minimized bool
	lastDrawn int
	lastPoll  time.Time
}

// New initializes SDL, opens the window and starts the animator.
func New(opts Options) (*View, error) {
	if opts.Title == "" {
		opts.Title = "Galaxy"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.ThemePoll <= 0 {
		opts.ThemePoll = 2 * time.Second
	}
	if opts.Signal == nil {
		opts.Signal = theme.NewSignal(theme.Dark)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")

	v := &View{opts: opts, clock: frameclock.New(), stats: framestats.NewRecorder(60)}

	var err error
	v.window, err = sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		opts.Width, opts.Height, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	v.renderer, err = sdl.CreateRenderer(v.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// Logical pixels are window points; the backing store follows the
	// renderer's output size on high-density displays.
	w, h := v.window.GetSize()
	ow, oh, err := v.renderer.GetOutputSize()
	if err != nil || ow <= 0 || oh <= 0 {
		ow, oh = w, h
	}
	v.canvas = raster.NewScaled(float64(ow)/float64(w), float64(oh)/float64(h))

	v.host = headless.NewHost(float64(w), float64(h))
	v.sched = headless.NewScheduler(v.clock.Now())
	v.anim = galaxy.New(v.canvas, v.host, v.sched, opts.Signal, galaxy.Options{
		Quality: opts.Quality,
		Tokens:  opts.Tokens,
	})
	if err := v.syncTexture(); err != nil {
		v.Close()
		return nil, err
	}
	log.Printf("sdlview: %dx%d window, %dx%d backing, %s tier", w, h, ow, oh, v.anim.Tier())
	return v, nil
}

// Run processes events and frames until the window is closed.
func (v *View) Run() error {
	interval := frameclock.Interval(v.opts.FPS)
	v.lastPoll = time.Now()

	for {
		start := time.Now()
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if quit := v.handleEvent(event); quit {
				return nil
			}
		}

		v.pollTheme()

		v.sched.Step(v.clock.Now() - v.sched.Now())
		st := v.anim.Stats()
		v.stats.Observe(st)
		if st.Drawn != v.lastDrawn {
			v.lastDrawn = st.Drawn
			if err := v.present(); err != nil {
				return err
			}
		}

		if elapsed := time.Since(start); elapsed < interval {
			sdl.Delay(uint32((interval - elapsed) / time.Millisecond))
		}
	}
}

// handleEvent maps SDL events onto the host. It reports whether the
// loop should stop.
func (v *View) handleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			w, h := v.window.GetSize()
			v.host.SetBounds(float64(w), float64(h))
			if err := v.syncTexture(); err != nil {
				log.Printf("sdlview: %v", err)
			}
		case sdl.WINDOWEVENT_HIDDEN, sdl.WINDOWEVENT_MINIMIZED:
			v.minimized = true
			v.updateVisibility()
		case sdl.WINDOWEVENT_SHOWN, sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_EXPOSED:
			v.minimized = false
			v.updateVisibility()
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return false
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_q:
			return true
		case sdl.K_t:
			v.toggleTheme()
		case sdl.K_p, sdl.K_SPACE:
			v.paused = !v.paused
			v.updateVisibility()
		}
	}
	return false
}

func (v *View) updateVisibility() {
	v.host.SetVisible(!v.minimized && !v.paused)
}

func (v *View) toggleTheme() {
	mode := theme.ModeOf(v.opts.Signal.Toggle())
	if v.opts.Store == nil {
		return
	}
	if err := theme.Save(v.opts.Store, mode); err != nil {
		log.Printf("sdlview: %v", err)
	}
	v.lastPoll = time.Now()
}

func (v *View) pollTheme() {
	if v.opts.Store == nil || time.Since(v.lastPoll) < v.opts.ThemePoll {
		return
	}
	v.lastPoll = time.Now()
	mode, err := theme.Load(v.opts.Store)
	if err != nil {
		log.Printf("sdlview: %v", err)
		return
	}
	v.opts.Signal.Set(mode.IsDark())
}

// syncTexture recreates the streaming texture when the backing store
// changed size.
func (v *View) syncTexture() error {
	bw, bh := v.canvas.Backing()
	if v.texture != nil && bw == v.texW && bh == v.texH {
		return nil
	}
	if v.texture != nil {
		v.texture.Destroy()
		v.texture = nil
	}
	tex, err := v.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(bw), int32(bh))
	if err != nil {
		return fmt.Errorf("creating %dx%d texture: %w", bw, bh, err)
	}
	v.texture, v.texW, v.texH = tex, bw, bh
	return nil
}

func (v *View) present() error {
	if err := v.syncTexture(); err != nil {
		return err
	}
	bg := raster.Background(theme.ModeOf(v.opts.Signal.Dark()).Backdrop())
	v.pixels = v.canvas.RGBA8(bg, v.pixels)
	if len(v.pixels) == 0 {
		return nil
	}
	if err := v.texture.Update(nil, unsafe.Pointer(&v.pixels[0]), v.texW*4); err != nil {
		return fmt.Errorf("uploading frame: %w", err)
	}
	if err := v.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := v.renderer.Copy(v.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	v.renderer.Present()
	return nil
}

// Report summarizes the frames drawn so far.
func (v *View) Report() *framestats.Report {
	return v.stats.Report(v.opts.Quality)
}

// Close disposes the animator and releases SDL resources.
func (v *View) Close() {
	if v.anim != nil {
		v.anim.Dispose()
	}
	if v.texture != nil {
		v.texture.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Destroy()
	}
	sdl.Quit()
}
