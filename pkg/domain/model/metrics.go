package model

import (
	"math"
	"strconv"

	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Fallback is displayed for derived metrics without a finite value
const Fallback = "—"

// EPA/play band thresholds
const (
	StrongTierThreshold = 0.08
	ModerateTierFloor   = 0.0

	// ProgressScaleMax is the EPA/play mapped to a full progress bar
	ProgressScaleMax = 0.25
)

// Ratio is a derived metric that may be undefined (zero denominator)
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewRatio wraps v, marking non-finite values invalid
func NewRatio(v float64) Ratio {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{Value: v, Valid: true}
}

// Divide returns num / den, invalid when den is zero
func Divide(num, den int) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return NewRatio(float64(num) / float64(den))
}

// Percent returns num / den * 100, invalid when den is zero
func Percent(num, den int) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return NewRatio(float64(num) / float64(den) * 100)
}

// Format renders the value with the given decimals, or Fallback
func (r Ratio) Format(decimals int) string {
	if !r.Valid {
		return Fallback
	}
	return strconv.FormatFloat(r.Value, 'f', decimals, 64)
}

// FormatPercent renders the value followed by "%", or Fallback
func (r Ratio) FormatPercent(decimals int) string {
	if !r.Valid {
		return Fallback
	}
	return r.Format(decimals) + "%"
}

// FormatSigned renders a signed percentage such as "+12.3%" or "-4.0%".
// Zero (including negative zero after rounding) is rendered without sign.
func (r Ratio) FormatSigned(decimals int) string {
	if !r.Valid {
		return Fallback
	}
	s := strconv.FormatFloat(r.Value, 'f', decimals, 64)
	zero := strconv.FormatFloat(0, 'f', decimals, 64)
	switch {
	case s == zero || s == "-"+zero:
		return zero + "%"
	case r.Value > 0:
		return "+" + s + "%"
	default:
		return s + "%"
	}
}

// TierOf bands an EPA/play value: > 0.08 strong, (0, 0.08] moderate, <= 0 weak
func TierOf(epaPerPlay float64) types.Tier {
	switch {
	case epaPerPlay > StrongTierThreshold:
		return types.TierStrong
	case epaPerPlay > ModerateTierFloor:
		return types.TierModerate
	default:
		return types.TierWeak
	}
}

// MeanEPAPerPlay returns the unweighted mean EPA/play over all teams
func MeanEPAPerPlay(teams []TeamStat) Ratio {
	if len(teams) == 0 {
		return Ratio{}
	}
	var sum float64
	for _, t := range teams {
		sum += t.EPAPerPlay
	}
	return NewRatio(sum / float64(len(teams)))
}

// VersusAverage returns (value / avg - 1) * 100
func VersusAverage(value float64, avg Ratio) Ratio {
	if !avg.Valid || avg.Value == 0 {
		return Ratio{}
	}
	return NewRatio((value/avg.Value - 1) * 100)
}

// ProgressWidth maps EPA/play onto [0, 100] percent of the progress bar,
// clamping values outside [0, ProgressScaleMax]
func ProgressWidth(epaPerPlay float64) float64 {
	return math.Min(math.Max(epaPerPlay/ProgressScaleMax*100, 0), 100)
}
