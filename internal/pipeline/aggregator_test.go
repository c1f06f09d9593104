package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/score"
)

var asOf = model.NewDate(2025, time.March, 15)

func tx(typ model.TxType, amount float64, category string, daysAgo int) model.Transaction {
	return model.Transaction{Type: typ, Amount: amount, Category: category, Date: asOf.AddDays(-daysAgo)}
}

func TestTotals(t *testing.T) {
	txs := []model.Transaction{
		tx(model.TypeIncome, 0.1, "Uber", 0),
		tx(model.TypeIncome, 0.2, "Uber", 0),
		tx(model.TypeExpense, 300, "Fuel", 1),
		tx(model.TypeWithdrawal, 500, "Salary Transfer", 2),
	}
	got := Totals(txs)
	require.Equal(t, 0.3, got.Income)
	require.Equal(t, 300.0, got.Expenses)
	require.Equal(t, 500.0, got.Withdrawals)
	require.Equal(t, 4, got.Transactions)
	require.Equal(t, -799.7, NetFlow(txs))
}

func TestAggregateDays_FillsGapsNewestFirst(t *testing.T) {
	txs := []model.Transaction{
		tx(model.TypeIncome, 800, "Uber", 0),
		tx(model.TypeExpense, 200, "Fuel", 0),
		tx(model.TypeIncome, 500, "Swiggy", 3),
		tx(model.TypeIncome, 999, "Swiggy", 10),
	}

	days := AggregateDays(txs, asOf.AddDays(-6), asOf)
	require.Len(t, days, 7)
	require.Equal(t, asOf.Key(), days[0].Date.Key())
	require.Equal(t, 800.0, days[0].Income)
	require.Equal(t, 600.0, days[0].Net())
	require.Equal(t, 2, days[0].Transactions)
	require.Equal(t, 0, days[1].Transactions)
	require.Equal(t, 500.0, days[3].Income)
	require.Equal(t, asOf.AddDays(-6).Key(), days[6].Date.Key())
}

func TestAggregateCategories(t *testing.T) {
	txs := []model.Transaction{
		tx(model.TypeExpense, 300, "Fuel", 0),
		tx(model.TypeExpense, 100, "Food", 0),
		tx(model.TypeExpense, 100, "", 1),
		tx(model.TypeIncome, 1000, "Uber", 1),
		tx(model.TypeExpense, 50, "Fuel", 30),
	}

	cats := AggregateCategories(txs, asOf.AddDays(-6), asOf)
	require.Len(t, cats, 4)
	require.Equal(t, "Fuel", cats[0].Category)
	require.Equal(t, 60.0, cats[0].SharePercent)
	require.Equal(t, "Food", cats[1].Category)
	require.Equal(t, "Uncategorized", cats[2].Category)
	require.Equal(t, "Uber", cats[3].Category)
	require.Equal(t, 0.0, cats[3].SharePercent)
}

func TestFilters(t *testing.T) {
	txs := []model.Transaction{
		tx(model.TypeIncome, 800, "Uber", 0),
		tx(model.TypeExpense, 200, "Fuel", 2),
		tx(model.TypeExpense, 50, "Food", 8),
	}

	require.Len(t, FilterByTime(txs, asOf.AddDays(-2), asOf), 2)
	require.Len(t, FilterByTime(txs, model.Date{}, model.Date{}), 3)
	require.Len(t, FilterByType(txs, model.TypeExpense), 2)
	require.Len(t, FilterByType(txs, ""), 3)
	require.Len(t, FilterByCategory(txs, "fu"), 1)
}

func TestBuildDashboard_DemoLedger(t *testing.T) {
	s := ledger.New()
	s.Profile = ledger.DemoProfile()
	s.Transactions = ledger.Demo(asOf)

	d := BuildDashboard(s, asOf, score.DefaultLeakOptions())
	require.Equal(t, asOf, d.AsOf)
	require.Equal(t, s.Profile.CurrentBalance, d.Balance)
	require.Equal(t, len(s.Transactions), d.Totals.Transactions)
	require.GreaterOrEqual(t, d.Karma.Score, 0)
	require.LessOrEqual(t, d.Karma.Score, 100)
	require.LessOrEqual(t, len(d.Leaks), score.MaxLeaks)
	require.Equal(t, 70, score.SurvivalScore(102, 85))
	require.Equal(t, score.SurvivalScore(s.Config.FuelPrice, DefaultOrderVolume), d.Survival)

	again := BuildDashboard(s, asOf, score.DefaultLeakOptions())
	require.Equal(t, d, again)
}

func TestBuildDashboard_EmptyLedger(t *testing.T) {
	d := BuildDashboard(ledger.New(), asOf, score.DefaultLeakOptions())
	require.Equal(t, 0, d.Karma.Score)
	require.Equal(t, 0.0, d.Shield.ExpenseRatio)
	require.Equal(t, score.RunwayUnbounded, d.Forecast.RunwayDays)
	require.Len(t, d.Leaks, 1)
	require.Equal(t, model.LeakHiddenFee, d.Leaks[0].Type)
}
