package result

import (
	"math"
	"testing"
)

func TestDeriveScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		wantPct  int
		wantTier Tier
	}{
		{"zero", 0, 0, Low},
		{"ten scale low", 2.5, 25, Low},
		{"ten scale boundary moderate", 4, 40, Moderate},
		{"ten scale high", 7.9, 79, High},
		{"ten scale very high", 8, 80, VeryHigh},
		{"ten scale max", 10, 100, VeryHigh},
		{"percent scale low", 39, 39, Low},
		{"percent scale boundary moderate", 40, 40, Moderate},
		{"percent scale moderate", 59, 59, Moderate},
		{"percent scale high", 79, 79, High},
		{"percent scale boundary very high", 80, 80, VeryHigh},
		{"clamped above", 140, 100, VeryHigh},
		{"negative", -3, 0, Low},
		{"nan", math.NaN(), 0, Low},
		{"positive infinity", math.Inf(1), 0, Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveScore(tt.raw)
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPct)
			}
			if got.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", got.Tier, tt.wantTier)
			}
		})
	}
}

// The two scales the backend has used must land on the same canonical value.
func TestDeriveScoreScaleEquivalence(t *testing.T) {
	tenScale := DeriveScore(7.9)
	percentScale := DeriveScore(79)

	if tenScale != percentScale {
		t.Errorf("7.9 (0-10) derived %+v, 79 (0-100) derived %+v", tenScale, percentScale)
	}
}
