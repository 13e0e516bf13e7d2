package galaxy

// Palette holds every theme-dependent value the frame loop reads.
// Positions and counts never depend on it.
type Palette struct {
	Star          RGBA
	StarIntensity float64

	Glow []ColorStop

	MeteorCeiling float64
	LineWidth     float64
	Blur          float64
	GlowAlpha     float64
	HeadRadius    float64
}

var (
	darkPalette = Palette{
		Star:          RGBA{R: 255, G: 255, B: 255},
		StarIntensity: 0.85,
		Glow: []ColorStop{
			{Offset: 0, Color: RGBA{R: 10, G: 28, B: 18, A: 0.26}},
			{Offset: 0.55, Color: RGBA{A: 0.05}},
			{Offset: 1, Color: Transparent},
		},
		MeteorCeiling: 0.75,
		LineWidth:     2.2,
		Blur:          18,
		GlowAlpha:     0.55,
		HeadRadius:    2.2,
	}

	lightPalette = Palette{
		Star:          RGBA{},
		StarIntensity: 0.18,
		Glow: []ColorStop{
			{Offset: 0, Color: RGBA{R: 16, G: 185, B: 129, A: 0.06}},
			{Offset: 0.6, Color: RGBA{R: 16, G: 185, B: 129}},
			{Offset: 1, Color: Transparent},
		},
		MeteorCeiling: 0.35,
		LineWidth:     1.5,
		Blur:          8,
		GlowAlpha:     0.25,
		HeadRadius:    1.6,
	}
)

// PaletteFor returns the palette for the dark or light theme.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}
