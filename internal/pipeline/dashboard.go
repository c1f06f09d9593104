package pipeline

import (
	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/score"
)

// DefaultOrderVolume is the order volume, in percent of normal, used for the
// dashboard's stress test.
const DefaultOrderVolume = 100

// BuildDashboard runs every engine against one snapshot.
func BuildDashboard(s *ledger.State, asOf model.Date, opts score.LeakOptions) model.Dashboard {
	totals := Totals(s.Transactions)

	return model.Dashboard{
		AsOf:     asOf,
		Totals:   totals,
		Karma:    score.Karma(s.Transactions, s.Profile, s.Config, asOf),
		Shield:   score.Shield(totals, s.Profile),
		Forecast: score.Forecast(totals, s.Profile),
		Leaks:    score.DetectLeaks(s.Transactions, s.Profile.CurrentBalance, opts),
		Survival: score.SurvivalScore(s.Config.FuelPrice, DefaultOrderVolume),
		Credit:   score.Credit(s.Profile.GigCreditScore),
		Balance:  s.Profile.CurrentBalance,
		NetFlow:  NetFlow(s.Transactions),
	}
}
