package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/Mr-Dark-debug/galaxy/internal/framestats"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
)

// chromeRows is the header plus the footer.
const chromeRows = 2

// defaultThemePoll is how often the stored theme is re-read so a
// `galaxyctl theme` change reaches a running session.
const defaultThemePoll = 2 * time.Second

// Options configures the terminal host.
type Options struct {
	Quality galaxy.Quality
	Tokens  galaxy.Tokens
	// Rand overrides the animator's random source.
	Rand func() float64

	FPS        int
	CellWidth  float64
	CellHeight float64

	// Profile is the terminal's color capability, usually
	// lipgloss.ColorProfile().
	Profile termenv.Profile

	// ThemePoll is the interval between theme reloads. Zero uses
	// the default; a negative value disables polling.
	ThemePoll time.Duration
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the Galaxy terminal host.
// The animator is created on the first window size message, because
// until then there is no container to size the sky to.
type Model struct {
	store  theme.Settings
	signal *theme.Signal
	opts   Options

	host   *termHost
	canvas *raster.Canvas
	anim   *galaxy.Animator
	stats  *framestats.Recorder

	// themeGen invalidates theme reloads issued before a local toggle
	// or before its save lands.
	themeGen int

	width  int
	height int

	statusMsg string
	err       error
}

// NewModel creates a new TUI model. store may be nil, in which case
// theme changes are not persisted.
func NewModel(store theme.Settings, signal *theme.Signal, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.ThemePoll == 0 {
		opts.ThemePoll = defaultThemePoll
	}
	if signal == nil {
		signal = theme.NewSignal(theme.Dark)
	}
	return Model{
		store:  store,
		signal: signal,
		opts:   opts,
		host:   newTermHost(opts.FPS, opts.CellWidth, opts.CellHeight),
		canvas: raster.ForCells(opts.CellWidth, opts.CellHeight),
		stats:  framestats.NewRecorder(30),
	}
}

// Animator returns the running animator, or nil before the first
// window size message.
func (m Model) Animator() *galaxy.Animator { return m.anim }

// Close disposes the animator. It is safe to call more than once.
func (m Model) Close() {
	if m.anim != nil {
		m.anim.Dispose()
	}
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type themePollMsg struct{}
type themeLoadedMsg struct {
	mode theme.Mode
	gen  int
}
type themeSavedMsg struct{ mode theme.Mode }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return batch(tea.SetWindowTitle("galaxy"), m.pollTheme())
}

func (m Model) pollTheme() tea.Cmd {
	if m.store == nil || m.opts.ThemePoll < 0 {
		return nil
	}
	return tea.Tick(m.opts.ThemePoll, func(time.Time) tea.Msg {
		return themePollMsg{}
	})
}

func (m Model) loadTheme(gen int) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		mode, err := theme.Load(store)
		if err != nil {
			return errMsg{err}
		}
		return themeLoadedMsg{mode: mode, gen: gen}
	}
}

func (m Model) saveTheme(mode theme.Mode) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		if err := theme.Save(store, mode); err != nil {
			return errMsg{err}
		}
		return themeSavedMsg{mode: mode}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.host.setSize(msg.Width, max(0, msg.Height-chromeRows))
		if m.anim == nil {
			m.startAnimator()
		}

	case tea.FocusMsg:
		m.host.setFocused(true)

	case tea.BlurMsg:
		m.host.setFocused(false)

	case frameMsg:
		if m.host.fire(msg.id, msg.at) && m.anim != nil {
			m.stats.Observe(m.anim.Stats())
		}

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case themePollMsg:
		cmd = m.loadTheme(m.themeGen)

	case themeLoadedMsg:
		if msg.gen == m.themeGen {
			m.signal.Set(msg.mode.IsDark())
		}
		cmd = m.pollTheme()

	case themeSavedMsg:
		// Reloads issued while the save was in flight may have read the
		// old value.
		m.themeGen++
		m.statusMsg = fmt.Sprintf("Theme saved: %s", msg.mode)

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		log.Printf("galaxy: %v", msg.err)
		// Keep polling after a failed reload.
		cmd = m.pollTheme()
	}

	return m, batch(append([]tea.Cmd{cmd}, m.host.ticks()...)...)
}

func (m *Model) startAnimator() {
	if _, _, ok := m.host.Bounds(); !ok {
		return
	}
	m.anim = galaxy.New(m.canvas, m.host, m.host, m.signal, galaxy.Options{
		Quality: m.opts.Quality,
		Rand:    m.opts.Rand,
		Tokens:  m.opts.Tokens,
	})
	w, h := m.anim.Size()
	log.Printf("galaxy: animator started at %dx%d (%s tier)", w, h, m.anim.Tier())
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Close()
		return m, tea.Quit

	case "t":
		dark := m.signal.Toggle()
		m.themeGen++
		mode := theme.ModeOf(dark)
		m.statusMsg = fmt.Sprintf("Theme: %s", mode)
		return m, m.saveTheme(mode)

	case "p", " ":
		m.host.setPaused(!m.host.paused)
		if m.host.paused {
			m.statusMsg = "Paused"
		} else {
			m.statusMsg = ""
		}
		return m, nil
	}
	return m, nil
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	st := newStyles(m.signal.Dark())

	var b strings.Builder
	b.WriteString(renderHeader(&m, st))
	b.WriteByte('\n')
	if body := m.renderSky(st); body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteString(renderFooter(&m, st))
	return b.String()
}

// renderSky converts the canvas to half-block rows. Before the
// animator exists the body is left blank.
func (m Model) renderSky(st styles) string {
	rows := m.height - chromeRows
	if rows <= 0 {
		return ""
	}
	if m.anim == nil {
		return strings.TrimSuffix(strings.Repeat("\n", rows), "\n")
	}
	return m.canvas.ANSI(st.bg, m.opts.Profile)
}

// batch drops nil commands and avoids wrapping a single command.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var out []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return tea.Batch(out...)
	}
}
