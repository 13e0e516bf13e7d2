// Package frameclock provides frame timestamps for Galaxy hosts.
//
// Animation timestamps are float64 milliseconds since a fixed origin,
// the same shape as a browser's high-resolution frame time. This package
// converts between wall-clock time and that representation and formats
// intervals for the status line and reports.
package frameclock

import (
	"fmt"
	"time"
)

// Clock measures milliseconds since its origin.
type Clock struct {
	origin time.Time
}

// New returns a clock whose origin is now.
func New() *Clock {
	return &Clock{origin: time.Now()}
}

// Now returns the milliseconds elapsed since the origin.
func (c *Clock) Now() float64 {
	return Millis(time.Since(c.origin))
}

// At converts a wall-clock instant to the clock's timescale.
func (c *Clock) At(t time.Time) float64 {
	return Millis(t.Sub(c.origin))
}

// Millis converts a duration to float milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Duration converts float milliseconds back to a time.Duration.
func Duration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Interval returns the frame period for a target rate.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// FPS converts a mean frame interval in ms to frames per second.
func FPS(intervalMs float64) float64 {
	if intervalMs <= 0 {
		return 0
	}
	return 1000 / intervalMs
}

// FormatInterval formats a millisecond value for display.
// Examples: "16.7ms", "1.2s", "2m 15.3s"
func FormatInterval(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.1fms", ms)
	}
	seconds := ms / 1000
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remaining := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}

// FormatFPS formats a rate like "49.8 fps".
func FormatFPS(fps float64) string {
	return fmt.Sprintf("%.1f fps", fps)
}
