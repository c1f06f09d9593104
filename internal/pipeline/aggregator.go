// Package pipeline orchestrates statement loading, aggregation and dashboard computation.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigfin/internal/model"
)

// Totals sums the ledger by transaction type. Sums are accumulated as decimals
// so long ledgers do not pick up float drift.
func Totals(txs []model.Transaction) model.Totals {
	var income, expenses, withdrawals decimal.Decimal
	for _, tx := range txs {
		amt := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case model.TypeIncome:
			income = income.Add(amt)
		case model.TypeExpense:
			expenses = expenses.Add(amt)
		case model.TypeWithdrawal:
			withdrawals = withdrawals.Add(amt)
		}
	}
	return model.Totals{
		Income:       income.InexactFloat64(),
		Expenses:     expenses.InexactFloat64(),
		Withdrawals:  withdrawals.InexactFloat64(),
		Transactions: len(txs),
	}
}

// NetFlow recomputes the balance change implied by the ledger: income minus
// expenses and withdrawals. It can differ from the stored wallet balance,
// which is maintained incrementally.
func NetFlow(txs []model.Transaction) float64 {
	net := decimal.Zero
	for _, tx := range txs {
		if !tx.Type.Valid() {
			continue
		}
		amt := decimal.NewFromFloat(tx.Amount)
		if tx.Type == model.TypeIncome {
			net = net.Add(amt)
		} else {
			net = net.Sub(amt)
		}
	}
	return net.InexactFloat64()
}

// AggregateDays computes per-day statistics for [since, until], both inclusive.
// Every day in the range is present so gaps show as zeros.
func AggregateDays(txs []model.Transaction, since, until model.Date) []model.DailyStats {
	filtered := FilterByTime(txs, since, until)

	dayMap := make(map[string]*model.DailyStats)
	for _, tx := range filtered {
		key := tx.Date.Key()
		ds, ok := dayMap[key]
		if !ok {
			ds = &model.DailyStats{Date: tx.Date}
			dayMap[key] = ds
		}
		ds.Transactions++
		switch tx.Type {
		case model.TypeIncome:
			ds.Income += tx.Amount
		case model.TypeExpense:
			ds.Expenses += tx.Amount
		case model.TypeWithdrawal:
			ds.Withdrawals += tx.Amount
		}
	}

	if !since.IsZero() && !until.IsZero() {
		for day := since; !day.After(until.Time); day = day.AddDays(1) {
			if _, ok := dayMap[day.Key()]; !ok {
				dayMap[day.Key()] = &model.DailyStats{Date: day}
			}
		}
	}

	// Most recent first
	days := make([]model.DailyStats, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date.Time)
	})
	return days
}

// AggregateCategories computes per-category totals, sorted by expenses descending.
func AggregateCategories(txs []model.Transaction, since, until model.Date) []model.CategoryStats {
	filtered := FilterByTime(txs, since, until)

	catMap := make(map[string]*model.CategoryStats)
	var totalExpenses float64
	for _, tx := range filtered {
		name := tx.Category
		if name == "" {
			name = "Uncategorized"
		}
		cs, ok := catMap[name]
		if !ok {
			cs = &model.CategoryStats{Category: name}
			catMap[name] = cs
		}
		cs.Transactions++
		switch tx.Type {
		case model.TypeIncome:
			cs.Income += tx.Amount
		case model.TypeExpense:
			cs.Expenses += tx.Amount
			totalExpenses += tx.Amount
		}
	}

	cats := make([]model.CategoryStats, 0, len(catMap))
	for _, cs := range catMap {
		if totalExpenses > 0 {
			cs.SharePercent = cs.Expenses / totalExpenses * 100
		}
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Expenses != cats[j].Expenses {
			return cats[i].Expenses > cats[j].Expenses
		}
		if cats[i].Income != cats[j].Income {
			return cats[i].Income > cats[j].Income
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// FilterByTime returns transactions dated within [since, until]. A zero bound is open.
func FilterByTime(txs []model.Transaction, since, until model.Date) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, tx := range txs {
		if !since.IsZero() && tx.Date.Before(since.Time) {
			continue
		}
		if !until.IsZero() && tx.Date.After(until.Time) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// FilterByType returns transactions of the given type.
func FilterByType(txs []model.Transaction, typ model.TxType) []model.Transaction {
	if typ == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Type == typ {
			result = append(result, tx)
		}
	}
	return result
}

// FilterByCategory returns transactions whose category contains the substring.
func FilterByCategory(txs []model.Transaction, category string) []model.Transaction {
	if category == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Category, category) {
			result = append(result, tx)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
