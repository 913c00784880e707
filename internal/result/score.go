package result

import "math"

// Tier buckets a datafication score for display.
type Tier int

const (
	Low Tier = iota
	Moderate
	High
	VeryHigh
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case High:
		return "High"
	case VeryHigh:
		return "VeryHigh"
	}
	return "Unknown"
}

// Score is the derived display form of the datafication score.
type Score struct {
	Percentage int
	Tier       Tier
}

// DeriveScore maps a raw backend score onto the canonical 0-100 percentage
// scale. The backend has emitted both 0-10 and 0-100 values over time:
// anything at or below 10 is taken as the 0-10 scale and multiplied by 10,
// anything above as a percentage. Non-finite input counts as 0, and the
// result is clamped to [0,100]. Tier boundaries are 40/60/80, lower bound
// inclusive, so exactly 40 is Moderate and exactly 80 is VeryHigh.
func DeriveScore(raw float64) Score {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		raw = 0
	}
	if raw <= 10 {
		raw *= 10
	}
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}

	pct := int(math.Round(raw))

	var tier Tier
	switch {
	case pct < 40:
		tier = Low
	case pct < 60:
		tier = Moderate
	case pct < 80:
		tier = High
	default:
		tier = VeryHigh
	}

	return Score{Percentage: pct, Tier: tier}
}
