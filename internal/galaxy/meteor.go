package galaxy

import "math"

// Meteor spawn and lifetime constants, in ms and px.
const (
	firstMeteorDelay  = 2500
	firstMeteorJitter = 4500
	meteorInterval    = 3200
	meteorJitter      = 6500

	meteorFadeIn = 0.15
)

// Meteor is a short-lived streak crossing the surface.
type Meteor struct {
	X, Y      float64
	VX, VY    float64
	Life      float64 // age fraction, 0 at birth, 1 at expiry
	TTL       float64 // ms
	CreatedAt float64 // ms
	Length    float64
}

// SpawnMeteor creates a meteor in the upper-right region of the surface,
// travelling left along a heading of roughly 210°.
func SpawnMeteor(rnd func() float64, now float64, width, height int) Meteor {
	w, h := float64(width), float64(height)
	x := w * (0.45 + rnd()*0.55)
	y := h * (0.05 + rnd()*0.25)
	speed := 9 + rnd()*6
	angle := math.Pi*7/6 + (rnd()-0.5)*0.25

	return Meteor{
		X:         x,
		Y:         y,
		VX:        math.Cos(angle) * speed,
		VY:        math.Sin(angle) * speed,
		TTL:       900 + rnd()*650,
		CreatedAt: now,
		Length:    140 + rnd()*120,
	}
}

// AgeFraction returns (now-CreatedAt)/TTL. It is not clamped.
func (m *Meteor) AgeFraction(now float64) float64 {
	if m.TTL <= 0 {
		return 1
	}
	return (now - m.CreatedAt) / m.TTL
}

// Advance moves the meteor by one velocity step.
func (m *Meteor) Advance() {
	m.X += m.VX
	m.Y += m.VY
}

// Tail returns the trailing end of the streak, Length px behind the head
// along the direction of travel.
func (m *Meteor) Tail() (x, y float64) {
	n := math.Max(1e-3, math.Hypot(m.VX, m.VY))
	return m.X - m.VX/n*m.Length, m.Y - m.VY/n*m.Length
}

// Fade ramps in over the first 15% of life and out over the rest.
func Fade(life float64) float64 {
	var f float64
	if life < meteorFadeIn {
		f = life / meteorFadeIn
	} else {
		f = (1 - life) / (1 - meteorFadeIn)
	}
	return clamp01(f)
}

// nextMeteorDelay returns the gap before the following spawn.
func nextMeteorDelay(rnd func() float64) float64 {
	return meteorInterval + rnd()*meteorJitter
}
