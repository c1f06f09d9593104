package model

// Totals holds ledger-wide sums by transaction type.
type Totals struct {
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Withdrawals  float64 `json:"withdrawals"`
	Transactions int     `json:"transactions"`
}

// DailyStats holds income and spend for a single calendar day.
type DailyStats struct {
	Date         Date    `json:"date"`
	Transactions int     `json:"transactions"`
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Withdrawals  float64 `json:"withdrawals"`
}

// Net returns income minus expenses and withdrawals for the day.
func (d DailyStats) Net() float64 {
	return d.Income - d.Expenses - d.Withdrawals
}

// CategoryStats holds aggregated spend for one category.
type CategoryStats struct {
	Category     string  `json:"category"`
	Transactions int     `json:"transactions"`
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	SharePercent float64 `json:"share_percent"` // share of total expenses
}

// KarmaBreakdown is the KarmaScore with its component scores.
type KarmaBreakdown struct {
	Score       int     `json:"score"`
	Consistency float64 `json:"consistency"`
	Performance float64 `json:"performance"`
	Loyalty     float64 `json:"loyalty"`
	DaysWorked  int     `json:"days_worked"`
	AvgDaily    float64 `json:"avg_daily"`
	WindowStart Date    `json:"window_start"`
	WindowEnd   Date    `json:"window_end"`
}

// Alert is a single user-facing message with a severity.
type Alert struct {
	Severity string `json:"severity"` // "warning" or "ok"
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// ShieldReport is the LeakShield ratio analysis.
type ShieldReport struct {
	TotalIncome     float64  `json:"total_income"`
	TotalExpenses   float64  `json:"total_expenses"`
	ExpenseRatio    float64  `json:"expense_ratio"`    // percent of income; 0 when there is no income
	LiquidityBuffer float64  `json:"liquidity_buffer"` // months of expenses covered by the balance
	LiquidityKnown  bool     `json:"liquidity_known"`  // false when there are no expenses ("N/A")
	ExpenseHigh     bool     `json:"expense_high"`
	LiquidityLow    bool     `json:"liquidity_low"`
	Alert           Alert    `json:"alert"`
	Insights        []string `json:"insights"`
}

// Forecast is the FlowForward cashflow projection.
type Forecast struct {
	DailyExpense      float64 `json:"daily_expense"`
	RunwayDays        int     `json:"runway_days"`
	NetCashflow       float64 `json:"net_cashflow"`
	ProjectedCashflow int     `json:"projected_cashflow"`
	RemainingGoal     float64 `json:"remaining_goal"`
	DailySaveTarget   int     `json:"daily_save_target"`
}

// LeakType names the kind of a detected leak.
type LeakType string

const (
	LeakFuelSpike   LeakType = "Fuel Spike"
	LeakHighExpense LeakType = "High Expense"
	LeakHiddenFee   LeakType = "Hidden Fee"
)

// Risk grades a leak.
type Risk string

const (
	RiskHigh   Risk = "High"
	RiskMedium Risk = "Medium"
	RiskLow    Risk = "Low"
)

// Leak is one flagged anomalous or excessive expense.
type Leak struct {
	ID            string   `json:"id"`
	Type          LeakType `json:"type"`
	Amount        float64  `json:"amount"`
	Risk          Risk     `json:"risk"`
	TransactionID string   `json:"transaction_id,omitempty"`
	Category      string   `json:"category,omitempty"`
	Date          Date     `json:"date"`
}

// CreditGauge describes where a gig credit score sits on the 300..850 scale.
type CreditGauge struct {
	Score    int     `json:"score"`
	Percent  float64 `json:"percent"`
	Eligible bool    `json:"eligible"`
}

// Dashboard bundles every engine's output for one snapshot.
type Dashboard struct {
	AsOf     Date           `json:"as_of"`
	Totals   Totals         `json:"totals"`
	Karma    KarmaBreakdown `json:"karma"`
	Shield   ShieldReport   `json:"shield"`
	Forecast Forecast       `json:"forecast"`
	Leaks    []Leak         `json:"leaks"`
	Survival int            `json:"survival"`
	Credit   CreditGauge    `json:"credit"`
	Balance  float64        `json:"balance"`
	NetFlow  float64        `json:"net_flow"`
}
