package galaxy

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownQuality is returned by ParseQuality for unrecognized settings.
var ErrUnknownQuality = errors.New("unknown quality")

// Quality is the caller-supplied quality setting.
type Quality string

const (
	QualityAuto   Quality = "auto"
	QualityLow    Quality = "low"
	QualityNormal Quality = "normal"
)

// ParseQuality converts a flag or env value to a Quality.
// The empty string means auto.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case "":
		return QualityAuto, nil
	case QualityAuto, QualityLow, QualityNormal:
		return q, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, low or normal)", ErrUnknownQuality, s)
	}
}

// Tier is the resolved quality preset.
type Tier int

const (
	TierNormal Tier = iota
	TierLow
)

func (t Tier) String() string {
	if t == TierLow {
		return "low"
	}
	return "normal"
}

// Small-surface cutoffs used by QualityAuto.
const (
	smallWidth  = 640
	smallHeight = 520
)

// TierParams holds the density and frame-rate limits of a tier.
type TierParams struct {
	MinStars    int
	MaxStars    int
	AreaPerStar float64
	// MinFrameMs is the minimum time between two drawn frames.
	MinFrameMs float64
}

var tierParams = map[Tier]TierParams{
	TierLow: {
		MinStars:    45,
		MaxStars:    120,
		AreaPerStar: 16000,
		MinFrameMs:  1000.0 / 36,
	},
	TierNormal: {
		MinStars:    70,
		MaxStars:    160,
		AreaPerStar: 12000,
		MinFrameMs:  1000.0 / 50,
	},
}

// ParamsFor returns the limits for a tier.
func ParamsFor(t Tier) TierParams {
	return tierParams[t]
}

// IsSmall reports whether a surface is below the auto-quality cutoffs.
func IsSmall(width, height int) bool {
	return width < smallWidth || height < smallHeight
}

// ResolveTier picks the tier for a surface. Explicit settings win;
// auto falls back to low on small surfaces.
func ResolveTier(q Quality, width, height int) Tier {
	switch q {
	case QualityLow:
		return TierLow
	case QualityNormal:
		return TierNormal
	}
	if IsSmall(width, height) {
		return TierLow
	}
	return TierNormal
}

// TargetStars returns clamp(floor(area/divisor), min, max).
func TargetStars(t Tier, width, height int) int {
	p := ParamsFor(t)
	n := int(math.Floor(float64(width) * float64(height) / p.AreaPerStar))
	if n < p.MinStars {
		return p.MinStars
	}
	if n > p.MaxStars {
		return p.MaxStars
	}
	return n
}
