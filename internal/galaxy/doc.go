// Package galaxy implements the animated particle background: a field of
// slowly rising, twinkling stars with the occasional meteor streaking
// up-left across the surface.
//
// The animator is host-agnostic. It draws through a Surface, learns its
// size and visibility from a Host, runs on a Scheduler's frame queue and
// samples a ThemeSource for light/dark colors. Hosts live elsewhere:
// internal/tui (terminal), internal/sdlview (SDL2 window) and
// internal/headless (tests, bench, snapshots).
//
// Layout:
//
//	quality.go  — quality setting, tiers and star-count targets
//	star.go     — star seeding, drift, wrap and twinkle
//	meteor.go   — meteor spawning, aging and fade
//	surface.go  — Surface / Host / Scheduler / ThemeSource contracts
//	palette.go  — theme-dependent colors and intensities
//	accent.go   — accent color token resolution
//	animator.go — the frame control loop
package galaxy
