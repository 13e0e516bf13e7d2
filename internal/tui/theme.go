package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
)

// ────────────────────────────────────────────────────────────
// Color Palettes: GitHub Dark / GitHub Light
// ────────────────────────────────────────────────────────────
//
// All chrome colors are defined here. The sky itself is painted by the
// animator; Bg is only the backdrop its canvas is composited onto.

type palette struct {
	Bg        string
	BgSurface lipgloss.Color

	Text      lipgloss.Color
	TextDim   lipgloss.Color
	TextMuted lipgloss.Color

	Accent lipgloss.Color
	Warn   lipgloss.Color
}

var darkPalette = palette{
	Bg:        theme.Dark.Backdrop(),
	BgSurface: lipgloss.Color("#1c2128"),
	Text:      lipgloss.Color("#e6edf3"),
	TextDim:   lipgloss.Color("#8b949e"),
	TextMuted: lipgloss.Color("#484f58"),
	Accent:    lipgloss.Color("#10b981"),
	Warn:      lipgloss.Color("#d29922"),
}

var lightPalette = palette{
	Bg:        theme.Light.Backdrop(),
	BgSurface: lipgloss.Color("#eaeef2"),
	Text:      lipgloss.Color("#1f2328"),
	TextDim:   lipgloss.Color("#656d76"),
	TextMuted: lipgloss.Color("#8c959f"),
	Accent:    lipgloss.Color("#059669"),
	Warn:      lipgloss.Color("#9a6700"),
}

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

type styles struct {
	bg colorful.Color

	headerBar   lipgloss.Style
	headerBrand lipgloss.Style
	headerSep   lipgloss.Style
	headerMeta  lipgloss.Style
	headerWarn  lipgloss.Style

	status   lipgloss.Style
	footer   lipgloss.Style
	hintKey  lipgloss.Style
	hintDesc lipgloss.Style
}

func newStyles(dark bool) styles {
	p := paletteFor(dark)
	return styles{
		bg: raster.Background(p.Bg),

		headerBar: lipgloss.NewStyle().
			Background(p.BgSurface).
			Foreground(p.Text).
			Padding(0, 1),
		headerBrand: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		headerSep: lipgloss.NewStyle().
			Foreground(p.TextMuted),
		headerMeta: lipgloss.NewStyle().
			Foreground(p.TextDim),
		headerWarn: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warn),

		status: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		footer: lipgloss.NewStyle().
			Background(p.BgSurface),
		hintKey: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		hintDesc: lipgloss.NewStyle().
			Foreground(p.TextMuted),
	}
}
