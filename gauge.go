package horizon

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// GoalTrackEntry is an amount a client contributes to a goal track.
type GoalTrackEntry struct {
	ID        string `json:"id,omitempty"`
	ClientRef string `json:"clientRef"`
	Amount    Amount `json:"amount"`
}

// GoalTrack is a named target measured against contributing entries.
type GoalTrack struct {
	Name    string           `json:"name"`
	Target  float64          `json:"target"`
	Entries []GoalTrackEntry `json:"entries"`
}

// Gauge computes the track completion.
func (g GoalTrack) Gauge() GaugeResult { return ComputeGauge(g.Entries, g.Target) }

// Goal names and targets of the commercial plan.
const (
	GoalTotalGrowth = "Total Growth"
	GoalRetention   = "Retention"
	GoalIncremental = "Incremental"
)

// DefaultGoalTracks returns the plan's tracks, without entries.
func DefaultGoalTracks() []GoalTrack {
	return []GoalTrack{
		{Name: GoalTotalGrowth, Target: 2195176117},
		{Name: GoalRetention, Target: 1225673502},
		{Name: GoalIncremental, Target: 969002614},
	}
}

// Tier ranks how far a track is from its target.
type Tier int

const (
	TierBehind Tier = iota
	TierMidway
	TierNear
	TierComplete
)

var tierNames = [...]string{"behind", "midway", "near", "complete"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// Color returns the gauge colour of the tier.
func (t Tier) Color() string {
	switch t {
	case TierComplete:
		return "#10b981"
	case TierNear:
		return "#f59e0b"
	case TierMidway:
		return "#f97316"
	default:
		return "#ef4444"
	}
}

// MarshalText encodes the tier by its name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tier name, failing on unknown names.
func (t *Tier) UnmarshalText(text []byte) error {
	for i, n := range tierNames {
		if n == string(text) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}

// tierOf ranks a completion ratio given in percent.
func tierOf(ratio float64) Tier {
	switch {
	case ratio >= 100:
		return TierComplete
	case ratio >= 75:
		return TierNear
	case ratio >= 50:
		return TierMidway
	default:
		return TierBehind
	}
}

// GaugeResult summarizes a goal track.
//
// CompletionPct is meant for display and is clamped to [0, 100]; Achieved and
// Gap are not, so an overshoot shows as a negative gap.
type GaugeResult struct {
	Achieved      float64 `json:"achievedTotal"`
	CompletionPct float64 `json:"completionPct"`
	Gap           float64 `json:"gap"`
	Tier          Tier    `json:"tier"`
}

// ComputeGauge measures entries against target. Entries without an amount
// count as 0. A target that is not positive gives a 0% completion.
func ComputeGauge(entries []GoalTrackEntry, target float64) GaugeResult {
	var achieved decimal.Decimal
	for _, e := range entries {
		achieved = achieved.Add(dec(e.Amount.Float64()))
	}
	target = finite(target)

	var completion float64
	if target > 0 {
		completion = achieved.Div(dec(target)).Mul(hundred).InexactFloat64()
	}
	return GaugeResult{
		Achieved:      achieved.InexactFloat64(),
		CompletionPct: math.Max(0, math.Min(completion, 100)),
		Gap:           dec(target).Sub(achieved).InexactFloat64(),
		Tier:          tierOf(completion),
	}
}
