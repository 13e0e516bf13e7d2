package galaxy

import (
	"errors"
	"testing"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want Quality
	}{
		{"", QualityAuto},
		{"auto", QualityAuto},
		{"LOW", QualityLow},
		{" normal ", QualityNormal},
	}
	for _, tt := range tests {
		got, err := ParseQuality(tt.in)
		if err != nil {
			t.Fatalf("ParseQuality(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseQuality(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseQuality("ultra"); !errors.Is(err, ErrUnknownQuality) {
		t.Errorf("expected ErrUnknownQuality, got %v", err)
	}
}

func TestResolveTier(t *testing.T) {
	tests := []struct {
		q    Quality
		w, h int
		want Tier
	}{
		{QualityAuto, 1920, 1080, TierNormal},
		{QualityAuto, 639, 1080, TierLow},
		{QualityAuto, 1920, 519, TierLow},
		{QualityAuto, 640, 520, TierNormal},
		{QualityLow, 1920, 1080, TierLow},
		{QualityNormal, 320, 480, TierNormal},
	}
	for _, tt := range tests {
		if got := ResolveTier(tt.q, tt.w, tt.h); got != tt.want {
			t.Errorf("ResolveTier(%s, %d, %d) = %s, want %s", tt.q, tt.w, tt.h, got, tt.want)
		}
	}
}

// TestTargetStarsScenarios covers the two documented reference sizes.
func TestTargetStarsScenarios(t *testing.T) {
	tier := ResolveTier(QualityAuto, 1920, 1080)
	if tier != TierNormal {
		t.Fatalf("expected normal tier for 1920x1080, got %s", tier)
	}
	if got := TargetStars(tier, 1920, 1080); got != 160 {
		t.Errorf("1920x1080: expected 160 stars (172 clamped), got %d", got)
	}

	tier = ResolveTier(QualityAuto, 320, 480)
	if tier != TierLow {
		t.Fatalf("expected low tier for 320x480, got %s", tier)
	}
	if got := TargetStars(tier, 320, 480); got != 45 {
		t.Errorf("320x480: expected 45 stars (9 clamped), got %d", got)
	}
}

// TestTargetStarsBounds checks clamp(area/divisor, min, max) across a
// spread of sizes, including the 1x1 minimum.
func TestTargetStarsBounds(t *testing.T) {
	for _, tier := range []Tier{TierLow, TierNormal} {
		p := ParamsFor(tier)
		for w := 1; w <= 4000; w += 333 {
			for h := 1; h <= 3000; h += 271 {
				got := TargetStars(tier, w, h)
				if got < p.MinStars || got > p.MaxStars {
					t.Fatalf("%s %dx%d: %d outside [%d,%d]", tier, w, h, got, p.MinStars, p.MaxStars)
				}
				want := int(float64(w*h) / p.AreaPerStar)
				want = max(p.MinStars, min(p.MaxStars, want))
				if got != want {
					t.Errorf("%s %dx%d: got %d, want %d", tier, w, h, got, want)
				}
			}
		}
	}
}

func TestTierFrameIntervals(t *testing.T) {
	if got := ParamsFor(TierLow).MinFrameMs; got < 27.7 || got > 27.8 {
		t.Errorf("low tier interval = %.3fms, want ~27.8ms", got)
	}
	if got := ParamsFor(TierNormal).MinFrameMs; got != 20 {
		t.Errorf("normal tier interval = %.3fms, want 20ms", got)
	}
}
