package ledger

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/theirongolddev/gigfin/internal/model"
)

// SeedDays is the length of the synthetic history generated by Seed.
const SeedDays = 30

// Seed replaces the ledger with SeedDays of synthetic activity derived from
// an annual income and monthly expenses. Roughly nine days in ten get a
// payout and eight in ten an expense, each within ±20% of the daily average.
// The wallet balance is left as is.
func (s *State) Seed(annualIncome, monthlyExpenses float64, today model.Date, rng *rand.Rand) error {
	if annualIncome < 0 || monthlyExpenses < 0 {
		return fmt.Errorf("%w: income and expenses must be non-negative", ErrInvalidAmount)
	}

	dailyIncome := math.Round(annualIncome / 365)
	dailyExpense := math.Round(monthlyExpenses * 12 / 365)

	txs := make([]model.Transaction, 0, SeedDays*2)
	for i := 0; i < SeedDays; i++ {
		day := today.AddDays(-i)

		if rng.Float64() > 0.1 {
			txs = append(txs, model.Transaction{
				ID:          fmt.Sprintf("inc-%d", i),
				Type:        model.TypeIncome,
				Amount:      math.Round(dailyIncome * (0.8 + rng.Float64()*0.4)),
				Category:    "Uber",
				Date:        day,
				Description: "Daily Payout",
			})
		}

		if rng.Float64() > 0.2 {
			category, description := "Food", "Lunch"
			if rng.Float64() > 0.5 {
				category, description = "Fuel", "Petrol"
			}
			txs = append(txs, model.Transaction{
				ID:          fmt.Sprintf("exp-%d", i),
				Type:        model.TypeExpense,
				Amount:      math.Round(dailyExpense * (0.8 + rng.Float64()*0.4)),
				Category:    category,
				Date:        day,
				Description: description,
			})
		}
	}

	s.Transactions = txs
	return nil
}

// Demo returns the fixed demonstration week used by a fresh dashboard,
// dated relative to today and ordered most recent first.
func Demo(today model.Date) []model.Transaction {
	return []model.Transaction{
		{ID: "1", Type: model.TypeIncome, Amount: 1200, Category: "Uber", Date: today, Description: "Daily Payout"},
		{ID: "2", Type: model.TypeExpense, Amount: 300, Category: "Fuel", Date: today, Description: "Petrol"},
		{ID: "3", Type: model.TypeIncome, Amount: 950, Category: "Uber", Date: today.AddDays(-1), Description: "Daily Payout"},
		{ID: "4", Type: model.TypeIncome, Amount: 1100, Category: "Uber", Date: today.AddDays(-2), Description: "Daily Payout"},
		{ID: "5", Type: model.TypeExpense, Amount: 150, Category: "Food", Date: today.AddDays(-2), Description: "Lunch"},
		{ID: "6", Type: model.TypeIncome, Amount: 800, Category: "Uber", Date: today.AddDays(-3), Description: "Daily Payout"},
		{ID: "7", Type: model.TypeIncome, Amount: 0, Category: "Uber", Date: today.AddDays(-4), Description: "Day Off"},
		{ID: "8", Type: model.TypeIncome, Amount: 1300, Category: "Uber", Date: today.AddDays(-5), Description: "Daily Payout"},
	}
}

// DemoProfile is the profile that accompanies the demonstration week.
func DemoProfile() model.UserProfile {
	p := DefaultProfile()
	p.Name = "Raju Kumar"
	p.Age = 28
	p.Occupation = "Swiggy Partner"
	p.Location = "Hyderabad"
	p.CurrentBalance = 4500
	p.AppStreak = 12
	return p
}
