package galaxy

import "math"

// wrapMargin is how far past an edge a star travels before wrapping.
const wrapMargin = 2

// Star is an ambient, slowly rising point of light.
type Star struct {
	X, Y        float64
	Radius      float64
	VY          float64
	BaseOpacity float64
	TwinkleSeed float64
}

// SeedStars creates n stars uniformly spread over a width×height surface.
func SeedStars(rnd func() float64, n, width, height int) []Star {
	w, h := float64(width), float64(height)
	stars := make([]Star, 0, n)
	for i := 0; i < n; i++ {
		stars = append(stars, Star{
			X:           rnd() * w,
			Y:           rnd() * h,
			Radius:      rnd()*1.7 + 0.2,
			VY:          rnd()*0.22 + 0.06,
			BaseOpacity: rnd()*0.8 + 0.2,
			TwinkleSeed: rnd() * math.Pi * 2,
		})
	}
	return stars
}

// Step moves the star up by its speed. Once it is past the top edge it
// reappears just below the bottom edge at a new random x.
func (s *Star) Step(rnd func() float64, width, height int) {
	s.Y -= s.VY
	if s.Y < -wrapMargin {
		s.Y = float64(height) + wrapMargin
		s.X = rnd() * float64(width)
	}
}

// Twinkle returns the brightness multiplier at time now (ms).
func (s *Star) Twinkle(now float64) float64 {
	t := now / 1000
	return 0.65 + 0.35*math.Sin(t*1.3+s.TwinkleSeed)
}

// Alpha returns the star's draw opacity for the given theme intensity.
func (s *Star) Alpha(now, intensity float64) float64 {
	return clamp01(s.BaseOpacity * s.Twinkle(now) * intensity)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
