package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/galaxy/internal/theme"
	"github.com/Mr-Dark-debug/galaxy/pkg/frameclock"
)

// renderHeader produces the top bar:
//
//	GALAXY  |  dark  |  normal  |  160 stars  |  1 meteor  |  19.8 fps
func renderHeader(m *Model, st styles) string {
	sep := st.headerSep.Render(" │ ")

	parts := []string{
		st.headerBrand.Render("GALAXY"),
		sep,
		st.headerMeta.Render(string(theme.ModeOf(m.signal.Dark()))),
	}

	if m.anim != nil {
		s := m.anim.Stats()
		parts = append(parts,
			sep, st.headerMeta.Render(s.Tier.String()),
			sep, st.headerMeta.Render(plural(s.Stars, "star")),
			sep, st.headerMeta.Render(plural(s.Meteors, "meteor")),
			sep, st.headerMeta.Render(frameclock.FormatFPS(m.stats.FPS())),
		)
	}
	if m.host.paused {
		parts = append(parts, sep, st.headerWarn.Render("PAUSED"))
	} else if !m.host.focused {
		parts = append(parts, sep, st.headerWarn.Render("hidden"))
	}

	return st.headerBar.Width(m.width).MaxHeight(1).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model, st styles) string {
	var left string
	if m.statusMsg != "" {
		left = st.status.Render(m.statusMsg)
	}
	right := renderHints(st, []hint{
		{"t", "theme"},
		{"p", "pause"},
		{"q", "quit"},
	})

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return st.footer.Width(m.width).MaxHeight(1).Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(st styles, hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			st.hintKey.Render(h.key)+" "+st.hintDesc.Render(h.desc))
	}
	return strings.Join(parts, st.hintDesc.Render("  "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
