// Package tui implements the Galaxy terminal host.
//
// The animator draws into a raster.Canvas sized in logical pixels; each
// terminal cell covers CellWidth x CellHeight of them and shows two
// stacked backing pixels as a half-block.
//
// Component architecture:
//
//	model.go  — root model, message routing, Init/Update/View
//	host.go   — galaxy.Host and galaxy.Scheduler over tea.Tick
//	theme.go  — dark and light chrome palettes
//	header.go — top bar with sky stats, footer with keyboard hints
package tui
