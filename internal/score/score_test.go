package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/model"
)

func TestShield_NoIncomeGivesZeroRatio(t *testing.T) {
	r := Shield(model.Totals{Expenses: 500}, model.UserProfile{CurrentBalance: 1000})
	require.Equal(t, 0.0, r.ExpenseRatio)
	require.False(t, math.IsNaN(r.ExpenseRatio))
	require.False(t, r.ExpenseHigh)
	require.True(t, r.LiquidityKnown)
	require.Equal(t, 2.0, r.LiquidityBuffer)
	require.Equal(t, []string{NoSubscriptionsInsight}, r.Insights)
}

func TestShield_NoExpensesIsUnknownLiquidity(t *testing.T) {
	r := Shield(model.Totals{Income: 1000}, model.UserProfile{CurrentBalance: -50})
	require.False(t, r.LiquidityKnown)
	require.False(t, r.LiquidityLow)
	require.Equal(t, "ok", r.Alert.Severity)
	require.Equal(t, "Your spending is within healthy limits.", r.Alert.Message)
}

func TestShield_HighExpenseAndLowLiquidity(t *testing.T) {
	r := Shield(model.Totals{Income: 1000, Expenses: 700}, model.UserProfile{CurrentBalance: 350})
	require.InDelta(t, 70, r.ExpenseRatio, 1e-9)
	require.True(t, r.ExpenseHigh)
	require.True(t, r.LiquidityLow)
	require.Equal(t, "warning", r.Alert.Severity)
	require.Contains(t, r.Alert.Message, "70%")
}

func TestShield_RatioAtLimitIsNotHigh(t *testing.T) {
	r := Shield(model.Totals{Income: 1000, Expenses: 600}, model.UserProfile{CurrentBalance: 600})
	require.False(t, r.ExpenseHigh)
	require.False(t, r.LiquidityLow)
}

func TestForecast_NoExpensesIsUnbounded(t *testing.T) {
	f := Forecast(model.Totals{Income: 3000}, model.UserProfile{CurrentBalance: 4500, SavingsGoal: 50000})
	require.Equal(t, RunwayUnbounded, f.RunwayDays)
	require.Equal(t, 3000, f.ProjectedCashflow)
	require.Equal(t, 45500.0, f.RemainingGoal)
	require.Equal(t, 506, f.DailySaveTarget) // 505.55 rounds up
}

func TestForecast_RunwayFloorsBalanceOverDailySpend(t *testing.T) {
	f := Forecast(model.Totals{Income: 5350, Expenses: 450}, model.UserProfile{CurrentBalance: 4500})
	require.Equal(t, 15.0, f.DailyExpense)
	require.Equal(t, 300, f.RunwayDays)
	require.Equal(t, 4900.0, f.NetCashflow)

	f = Forecast(model.Totals{Expenses: 700}, model.UserProfile{CurrentBalance: 100})
	// 100 / (700/30) = 4.28
	require.Equal(t, 4, f.RunwayDays)
}

func TestForecast_GoalAlreadyMet(t *testing.T) {
	f := Forecast(model.Totals{}, model.UserProfile{CurrentBalance: 60000, SavingsGoal: 50000})
	require.Zero(t, f.RemainingGoal)
	require.Zero(t, f.DailySaveTarget)
}

func TestForecast_NegativeCashflowRoundsHalfUp(t *testing.T) {
	f := Forecast(model.Totals{Income: 100, Expenses: 102.5}, model.UserProfile{})
	require.Equal(t, -2, f.ProjectedCashflow)
}

func TestDetectLeaks_FuelSpikeThenHighExpense(t *testing.T) {
	txs := []model.Transaction{
		{ID: "a", Type: model.TypeExpense, Amount: 100, Category: "Fuel"},
		{ID: "b", Type: model.TypeExpense, Amount: 100, Category: "Fuel"},
		{ID: "c", Type: model.TypeExpense, Amount: 400, Category: "Fuel"},
		{ID: "d", Type: model.TypeExpense, Amount: 50, Category: "Food"},
	}

	leaks := DetectLeaks(txs, 3000, DefaultLeakOptions())
	require.Len(t, leaks, 2)

	require.Equal(t, model.LeakFuelSpike, leaks[0].Type)
	require.Equal(t, "c", leaks[0].TransactionID)
	require.Equal(t, 200.0, leaks[0].Amount) // 400 - mean(200)
	require.Equal(t, model.RiskHigh, leaks[0].Risk)

	require.Equal(t, model.LeakHighExpense, leaks[1].Type)
	require.Equal(t, "c", leaks[1].TransactionID)
	require.Equal(t, model.RiskMedium, leaks[1].Risk)
}

func TestDetectLeaks_TruncatesToThree(t *testing.T) {
	var txs []model.Transaction
	for i := 0; i < 6; i++ {
		txs = append(txs, model.Transaction{Type: model.TypeExpense, Amount: 500, Category: "Rent"})
	}
	leaks := DetectLeaks(txs, 1000, DefaultLeakOptions())
	require.Len(t, leaks, MaxLeaks)
	for _, l := range leaks {
		require.Equal(t, model.LeakHighExpense, l.Type)
	}
}

func TestDetectLeaks_PlaceholderOnlyWhenNothingMatched(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.TypeExpense, Amount: 100, Category: "Fuel"},
		{Type: model.TypeIncome, Amount: 5000, Category: "Uber"},
	}

	leaks := DetectLeaks(txs, 4500, DefaultLeakOptions())
	require.Len(t, leaks, 1)
	require.Equal(t, model.LeakHiddenFee, leaks[0].Type)
	require.Equal(t, model.RiskLow, leaks[0].Risk)

	require.Empty(t, DetectLeaks(txs, 4500, LeakOptions{Placeholder: false}))

	txs = append(txs, model.Transaction{Type: model.TypeExpense, Amount: 900, Category: "Repair"})
	leaks = DetectLeaks(txs, 4500, DefaultLeakOptions())
	for _, l := range leaks {
		require.NotEqual(t, model.LeakHiddenFee, l.Type)
	}
}

func TestDetectLeaks_NegativeBalanceFlagsEveryExpense(t *testing.T) {
	txs := []model.Transaction{
		{ID: "a", Type: model.TypeExpense, Amount: 1, Category: "Food"},
		{ID: "b", Type: model.TypeIncome, Amount: 800, Category: "Uber"},
		{ID: "c", Type: model.TypeExpense, Amount: 5, Category: "Tea"},
		{ID: "d", Type: model.TypeExpense, Amount: 20, Category: "Parking"},
		{ID: "e", Type: model.TypeExpense, Amount: 30, Category: "Toll"},
	}

	leaks := DetectLeaks(txs, -200, DefaultLeakOptions())
	require.Len(t, leaks, MaxLeaks)
	for i, id := range []string{"a", "c", "d"} {
		require.Equal(t, model.LeakHighExpense, leaks[i].Type)
		require.Equal(t, id, leaks[i].TransactionID)
	}
}

func TestDetectLeaks_IncomeIsNeverHighExpense(t *testing.T) {
	txs := []model.Transaction{{Type: model.TypeWithdrawal, Amount: 9000, Category: "Salary Transfer"}}
	leaks := DetectLeaks(txs, 100, LeakOptions{})
	require.Empty(t, leaks)
}

func TestSurvivalScore(t *testing.T) {
	tests := []struct {
		fuel, volume float64
		want         int
	}{
		{90, 100, 100},
		{102, 85, 70},
		{80, 150, 100}, // bonus clamps at 100
		{120, 150, 65},
		{200, 0, 0}, // clamps at 0
		{95, 100, 93}, // 92.5 rounds up
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SurvivalScore(tt.fuel, tt.volume), "fuel=%v volume=%v", tt.fuel, tt.volume)
	}
}

func TestCredit(t *testing.T) {
	g := Credit(650)
	require.True(t, g.Eligible)
	require.InDelta(t, 63.636, g.Percent, 0.001)

	require.False(t, Credit(649).Eligible)
	require.Equal(t, 0.0, Credit(100).Percent)
	require.Equal(t, 100.0, Credit(900).Percent)
}
