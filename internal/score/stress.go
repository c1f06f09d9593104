package score

import (
	"math"

	"github.com/theirongolddev/gigfin/internal/model"
)

const (
	baseFuelPrice   = 90.0
	fuelPenalty     = 1.5
	baseOrderVolume = 100.0
	volumePenalty   = 0.8
	volumeBonus     = 0.2
)

// SurvivalScore runs the stress test: fuel prices above 90 and order volume
// below 100% cost points, volume above 100% earns a smaller bonus.
func SurvivalScore(fuelPrice, orderVolume float64) int {
	s := 100 - math.Max(0, fuelPrice-baseFuelPrice)*fuelPenalty
	if orderVolume < baseOrderVolume {
		s -= (baseOrderVolume - orderVolume) * volumePenalty
	} else {
		s += (orderVolume - baseOrderVolume) * volumeBonus
	}
	return clampInt(int(roundHalfUp(s)), 0, 100)
}

const (
	creditFloor       = 300
	creditCeiling     = 850
	creditEligibleMin = 650
)

// Credit places a gig credit score on the 300..850 gauge and reports
// micro-loan eligibility.
func Credit(gigCreditScore int) model.CreditGauge {
	pct := float64(gigCreditScore-creditFloor) / float64(creditCeiling-creditFloor) * 100
	return model.CreditGauge{
		Score:    gigCreditScore,
		Percent:  math.Max(0, math.Min(100, pct)),
		Eligible: gigCreditScore >= creditEligibleMin,
	}
}
