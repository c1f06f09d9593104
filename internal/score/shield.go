package score

import (
	"fmt"

	"github.com/theirongolddev/gigfin/internal/model"
)

const (
	// ExpenseRatioLimit is the expense share of income, in percent, above which spending is flagged.
	ExpenseRatioLimit = 60.0
	// LiquidityFloor is the minimum months of expenses the balance should cover.
	LiquidityFloor = 1.0
)

// NoSubscriptionsInsight is always reported alongside the ratio alert.
const NoSubscriptionsInsight = "No unused subscriptions detected this month."

// Shield computes the LeakShield ratios and alert from ledger totals and the
// profile's current balance.
func Shield(totals model.Totals, profile model.UserProfile) model.ShieldReport {
	r := model.ShieldReport{
		TotalIncome:   totals.Income,
		TotalExpenses: totals.Expenses,
		Insights:      []string{NoSubscriptionsInsight},
	}

	if totals.Income > 0 {
		r.ExpenseRatio = totals.Expenses / totals.Income * 100
	}
	if totals.Expenses > 0 {
		r.LiquidityBuffer = profile.CurrentBalance / totals.Expenses
		r.LiquidityKnown = true
	}

	r.ExpenseHigh = r.ExpenseRatio > ExpenseRatioLimit
	r.LiquidityLow = r.LiquidityKnown && r.LiquidityBuffer < LiquidityFloor

	if r.ExpenseHigh {
		r.Alert = model.Alert{
			Severity: "warning",
			Title:    "High Expense Warning",
			Message: fmt.Sprintf("Your expenses are %.0f%% of your income. Consider cutting non-essential costs.",
				r.ExpenseRatio),
		}
	} else {
		r.Alert = model.Alert{
			Severity: "ok",
			Title:    "Spending Under Control",
			Message:  "Your spending is within healthy limits.",
		}
	}

	return r
}
