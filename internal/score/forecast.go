package score

import (
	"math"

	"github.com/theirongolddev/gigfin/internal/model"
)

const (
	// RunwayUnbounded is reported when there is no spending to divide by.
	RunwayUnbounded = 999
	// RunwayDisplayCap is the runway above which the CLI prints "365+".
	RunwayDisplayCap = 365

	ledgerPeriodDays = 30 // ledger totals are treated as one month
	goalHorizonDays  = 90
)

// Forecast projects runway, next-period cashflow and the daily savings needed
// to reach the savings goal in ninety days.
func Forecast(totals model.Totals, profile model.UserProfile) model.Forecast {
	var f model.Forecast

	f.DailyExpense = totals.Expenses / ledgerPeriodDays
	if f.DailyExpense > 0 {
		f.RunwayDays = int(math.Floor(profile.CurrentBalance / f.DailyExpense))
	} else {
		f.RunwayDays = RunwayUnbounded
	}

	f.NetCashflow = totals.Income - totals.Expenses
	f.ProjectedCashflow = int(roundHalfUp(f.NetCashflow))

	f.RemainingGoal = math.Max(0, profile.SavingsGoal-profile.CurrentBalance)
	f.DailySaveTarget = int(roundHalfUp(f.RemainingGoal / goalHorizonDays))

	return f
}
