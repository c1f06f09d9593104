// Package score implements the pure scoring and forecasting engines.
//
// Every function here is a deterministic function of its arguments: the caller
// supplies the reference date, so nothing reads the wall clock.
package score

import (
	"math"

	"github.com/theirongolddev/gigfin/internal/model"
)

// KarmaWindowDays is the length of the trailing window, today included.
const KarmaWindowDays = 7

const (
	consistencyWeight = 40.0
	performanceFull   = 30.0
	performancePart   = 15.0
	loyaltyPerDay     = 2
	loyaltyCap        = 30
)

// Karma computes the KarmaScore from income earned in the seven days ending
// at asOf, the profile's app streak and the configured daily target.
func Karma(txs []model.Transaction, profile model.UserProfile, cfg model.AppConfig, asOf model.Date) model.KarmaBreakdown {
	start := asOf.AddDays(-(KarmaWindowDays - 1))
	b := model.KarmaBreakdown{WindowStart: start, WindowEnd: asOf}

	worked := make(map[string]struct{})
	var earned float64
	for _, tx := range txs {
		if tx.Type != model.TypeIncome {
			continue
		}
		if tx.Date.Before(start.Time) || tx.Date.After(asOf.Time) {
			continue
		}
		earned += tx.Amount
		if tx.Amount > 0 {
			worked[tx.Date.Key()] = struct{}{}
		}
	}

	b.DaysWorked = len(worked)
	b.Consistency = float64(b.DaysWorked) / KarmaWindowDays * consistencyWeight
	if b.DaysWorked > 0 {
		b.AvgDaily = earned / float64(b.DaysWorked)
	}

	switch {
	case b.AvgDaily >= cfg.DailyTarget && b.AvgDaily > 0:
		b.Performance = performanceFull
	case b.AvgDaily > 0:
		b.Performance = performancePart
	}

	streak := profile.AppStreak
	if streak < 0 {
		streak = 0
	}
	b.Loyalty = math.Min(float64(streak*loyaltyPerDay), loyaltyCap)

	b.Score = clampInt(int(roundHalfUp(b.Consistency+b.Performance+b.Loyalty)), 0, 100)
	return b
}

// KarmaLabel describes a KarmaScore for display.
func KarmaLabel(score int) string {
	switch {
	case score >= 75:
		return "Good Standing"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// Segment buckets a KarmaScore into a worker segment.
func Segment(score int) string {
	switch {
	case score >= 80:
		return "Growth Striver"
	case score >= 50:
		return "Stable Earner"
	default:
		return "Needs Improvement"
	}
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
