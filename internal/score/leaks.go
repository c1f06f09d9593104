package score

import (
	"strconv"

	"github.com/theirongolddev/gigfin/internal/model"
)

const (
	// FuelCategory is the category scanned for fuel spend spikes.
	FuelCategory = "Fuel"
	// MaxLeaks bounds the detector's result.
	MaxLeaks = 3

	fuelSpikeFactor    = 1.2
	highExpenseShare   = 0.10
	placeholderFeeSize = 120
)

// LeakOptions controls the leak detector.
type LeakOptions struct {
	// Placeholder emits a single low-risk "Hidden Fee" entry when nothing
	// real was found, so the list is never empty.
	Placeholder bool
}

// DefaultLeakOptions returns the options used when none are configured.
func DefaultLeakOptions() LeakOptions {
	return LeakOptions{Placeholder: true}
}

// DetectLeaks flags fuel spend spikes and oversized expenses. Fuel spikes come
// first, then high expenses, each in ledger order; at most MaxLeaks are returned.
func DetectLeaks(txs []model.Transaction, currentBalance float64, opts LeakOptions) []model.Leak {
	var leaks []model.Leak
	next := func() string { return strconv.Itoa(len(leaks) + 1) }

	var fuel []model.Transaction
	var fuelSum float64
	for _, tx := range txs {
		if tx.Category == FuelCategory {
			fuel = append(fuel, tx)
			fuelSum += tx.Amount
		}
	}
	if len(fuel) > 0 {
		mean := fuelSum / float64(len(fuel))
		for _, tx := range fuel {
			if tx.Amount > fuelSpikeFactor*mean {
				leaks = append(leaks, model.Leak{
					ID:            next(),
					Type:          model.LeakFuelSpike,
					Amount:        tx.Amount - mean,
					Risk:          model.RiskHigh,
					TransactionID: tx.ID,
					Category:      tx.Category,
					Date:          tx.Date,
				})
			}
		}
	}

	limit := highExpenseShare * currentBalance
	for _, tx := range txs {
		if tx.Type == model.TypeExpense && tx.Amount > limit {
			leaks = append(leaks, model.Leak{
				ID:            next(),
				Type:          model.LeakHighExpense,
				Amount:        tx.Amount,
				Risk:          model.RiskMedium,
				TransactionID: tx.ID,
				Category:      tx.Category,
				Date:          tx.Date,
			})
		}
	}

	if len(leaks) == 0 && opts.Placeholder {
		leaks = append(leaks, model.Leak{
			ID:     next(),
			Type:   model.LeakHiddenFee,
			Amount: placeholderFeeSize,
			Risk:   model.RiskLow,
		})
	}

	if len(leaks) > MaxLeaks {
		leaks = leaks[:MaxLeaks]
	}
	return leaks
}
