// Package framestats provides lightweight, deterministic statistics over
// the animator's drawn frames.
//
// Key capabilities:
//   - Effective frame rate from drawn-frame timestamps
//   - Jank detection via Z-score analysis of frame intervals
//   - Interval trend analysis via linear regression
//
// Hosts feed a Recorder with galaxy.Stats snapshots after each scheduler
// tick; the recorder only looks at counter deltas, so it never needs a
// callback from inside the frame loop.
package framestats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/pkg/frameclock"
)

// Recorder accumulates drawn-frame timestamps.
type Recorder struct {
	window int // max timestamps kept; 0 keeps everything

	draws   []float64
	skipped int
	spawned int
	expired int

	lastDrawn int
	last      galaxy.Stats
}

// NewRecorder creates a recorder keeping at most window timestamps.
// Use window 0 for a bounded run such as a benchmark.
func NewRecorder(window int) *Recorder {
	return &Recorder{window: window}
}

// Observe records the frames drawn since the previous snapshot.
// Only the latest draw timestamp is visible in a snapshot, so callers
// should observe after every scheduler tick.
func (r *Recorder) Observe(s galaxy.Stats) {
	if s.Drawn > r.lastDrawn {
		r.draws = append(r.draws, s.LastDrawAt)
		if r.window > 0 && len(r.draws) > r.window {
			r.draws = r.draws[len(r.draws)-r.window:]
		}
	}
	r.lastDrawn = s.Drawn
	r.skipped = s.Skipped
	r.spawned = s.Spawned
	r.expired = s.Expired
	r.last = s
}

// Intervals returns the gaps between consecutive drawn frames, in ms.
func (r *Recorder) Intervals() []float64 {
	if len(r.draws) < 2 {
		return nil
	}
	out := make([]float64, 0, len(r.draws)-1)
	for i := 1; i < len(r.draws); i++ {
		out = append(out, r.draws[i]-r.draws[i-1])
	}
	return out
}

// FPS returns the effective drawn-frame rate over the window.
func (r *Recorder) FPS() float64 {
	mean, _ := meanStdDev(r.Intervals())
	return frameclock.FPS(mean)
}

// ============================================================
// Jank Detection
// ============================================================

// JankFrame identifies a frame interval far above the mean.
type JankFrame struct {
	Index      int     `json:"index"`
	IntervalMs float64 `json:"interval_ms"`
	ZScore     float64 `json:"z_score"`
	Severity   string  `json:"severity"` // "medium", "high"
}

// DetectJank flags intervals with a Z-score above 2.0 ("medium") or
// 3.0 ("high"). Uniform intervals never produce jank.
func DetectJank(intervals []float64) []JankFrame {
	if len(intervals) < 2 {
		return nil
	}
	mean, stddev := meanStdDev(intervals)
	if stddev == 0 {
		return nil
	}

	var jank []JankFrame
	for i, v := range intervals {
		z := (v - mean) / stddev
		if z <= 2.0 {
			continue
		}
		severity := "medium"
		if z > 3.0 {
			severity = "high"
		}
		jank = append(jank, JankFrame{
			Index:      i,
			IntervalMs: math.Round(v*100) / 100,
			ZScore:     math.Round(z*100) / 100,
			Severity:   severity,
		})
	}
	return jank
}

func meanStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	n := float64(len(values))
	mean = sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// ============================================================
// Interval Trend
// ============================================================

// Trend is the least-squares fit of interval against frame index.
type Trend struct {
	Slope     float64 `json:"slope_ms_per_frame"`
	Intercept float64 `json:"intercept_ms"`
	RSquared  float64 `json:"r_squared"`
	Degrading bool    `json:"degrading"`
}

// dataPoint is one (frame index, interval) observation.
type dataPoint struct {
	x float64
	y float64
}

// IntervalTrend fits intervals against their index. A clearly positive
// slope with a good fit means frames are getting slower over time.
func IntervalTrend(intervals []float64) Trend {
	points := make([]dataPoint, len(intervals))
	for i, v := range intervals {
		points[i] = dataPoint{x: float64(i), y: v}
	}
	slope, intercept, r2 := linearRegression(points)
	return Trend{
		Slope:     math.Round(slope*1000) / 1000,
		Intercept: math.Round(intercept*100) / 100,
		RSquared:  math.Round(r2*1000) / 1000,
		Degrading: slope > 0.05 && r2 > 0.7,
	}
}

// linearRegression computes ordinary least squares regression.
// Returns slope (m), intercept (b), and R-squared goodness of fit.
func linearRegression(points []dataPoint) (slope, intercept, rSquared float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		sumX += p.x
		sumY += p.y
		sumXY += p.x * p.y
		sumX2 += p.x * p.x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for _, p := range points {
		predicted := slope*p.x + intercept
		ssRes += (p.y - predicted) * (p.y - predicted)
		ssTot += (p.y - meanY) * (p.y - meanY)
	}

	if ssTot == 0 {
		rSquared = 1.0
	} else {
		rSquared = 1 - ssRes/ssTot
	}

	return slope, intercept, rSquared
}

// ============================================================
// Report
// ============================================================

// Report is the output of `galaxyctl bench`.
type Report struct {
	GeneratedAt string `json:"generated_at"`
	Quality     string `json:"quality"`
	Tier        string `json:"tier"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Stars       int    `json:"stars"`

	DrawnFrames   int     `json:"drawn_frames"`
	SkippedFrames int     `json:"skipped_frames"`
	MeanInterval  float64 `json:"mean_interval_ms"`
	StdDev        float64 `json:"stddev_ms"`
	FPS           float64 `json:"fps"`

	MeteorsSpawned int `json:"meteors_spawned"`
	MeteorsExpired int `json:"meteors_expired"`

	Jank     []JankFrame `json:"jank"`
	Trend    Trend       `json:"trend"`
	Warnings []string    `json:"warnings"`
}

// Report summarizes everything recorded so far.
func (r *Recorder) Report(quality galaxy.Quality) *Report {
	intervals := r.Intervals()
	mean, stddev := meanStdDev(intervals)

	rep := &Report{
		GeneratedAt:    time.Now().Format(time.RFC3339),
		Quality:        string(quality),
		Tier:           r.last.Tier.String(),
		Width:          r.last.Width,
		Height:         r.last.Height,
		Stars:          r.last.Stars,
		DrawnFrames:    len(r.draws),
		SkippedFrames:  r.skipped,
		MeanInterval:   math.Round(mean*100) / 100,
		StdDev:         math.Round(stddev*100) / 100,
		FPS:            math.Round(frameclock.FPS(mean)*10) / 10,
		MeteorsSpawned: r.spawned,
		MeteorsExpired: r.expired,
		Jank:           DetectJank(intervals),
		Trend:          IntervalTrend(intervals),
	}

	if rep.Trend.Degrading {
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("⚠ FRAME TIME DEGRADING (slope=%.3f ms/frame, R²=%.3f).",
				rep.Trend.Slope, rep.Trend.RSquared))
	}
	for _, j := range rep.Jank {
		if j.Severity == "high" {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("⚠ JANK: frame %d took %s (Z-score: %.2f).",
					j.Index, frameclock.FormatInterval(j.IntervalMs), j.ZScore))
		}
	}
	return rep
}

// FormatReport generates a human-readable markdown report.
func FormatReport(rep *Report) string {
	var b strings.Builder

	b.WriteString("# Galaxy Frame Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n", rep.GeneratedAt))
	b.WriteString(fmt.Sprintf("**Surface:** %dx%d (%s quality, %s tier, %d stars)\n\n",
		rep.Width, rep.Height, rep.Quality, rep.Tier, rep.Stars))

	b.WriteString("## Frame Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Drawn Frames | %d |\n", rep.DrawnFrames))
	b.WriteString(fmt.Sprintf("| Throttled Frames | %d |\n", rep.SkippedFrames))
	b.WriteString(fmt.Sprintf("| Mean Interval | %s |\n", frameclock.FormatInterval(rep.MeanInterval)))
	b.WriteString(fmt.Sprintf("| Std Dev | %s |\n", frameclock.FormatInterval(rep.StdDev)))
	b.WriteString(fmt.Sprintf("| Effective Rate | %s |\n", frameclock.FormatFPS(rep.FPS)))
	b.WriteString(fmt.Sprintf("| Meteors Spawned | %d |\n", rep.MeteorsSpawned))
	b.WriteString(fmt.Sprintf("| Meteors Expired | %d |\n\n", rep.MeteorsExpired))

	if len(rep.Jank) > 0 {
		b.WriteString("## Jank\n\n")
		b.WriteString("| Frame | Interval | Z-Score | Severity |\n")
		b.WriteString("|-------|----------|---------|----------|\n")
		for _, j := range rep.Jank {
			b.WriteString(fmt.Sprintf("| %d | %s | %.2f | %s |\n",
				j.Index, frameclock.FormatInterval(j.IntervalMs), j.ZScore, j.Severity))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Interval Trend\n\n")
	b.WriteString(fmt.Sprintf("- **Slope:** %.3f ms/frame\n", rep.Trend.Slope))
	b.WriteString(fmt.Sprintf("- **Intercept:** %.2f ms\n", rep.Trend.Intercept))
	b.WriteString(fmt.Sprintf("- **R² Fit:** %.3f\n", rep.Trend.RSquared))
	if rep.Trend.Degrading {
		b.WriteString("- **⚠ WARNING:** Frame time is degrading!\n")
	}
	b.WriteString("\n")

	if len(rep.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range rep.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}
