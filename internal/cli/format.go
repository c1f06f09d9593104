// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/gigfin/internal/score"
)

// CurrencySymbol prefixes every money amount.
const CurrencySymbol = "₹"

// FormatCurrency formats a rupee amount. Whole amounts drop the paise.
// e.g., 1234.5 -> "₹1,234.50", 4500 -> "₹4,500", -300 -> "-₹300"
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-" + FormatCurrency(-amount)
	}

	rounded := math.Round(amount*100) / 100
	whole := math.Floor(rounded)
	paise := int64(math.Round((rounded - whole) * 100))

	s := CurrencySymbol + FormatNumber(int64(whole))
	if paise != 0 {
		s += fmt.Sprintf(".%02d", paise)
	}
	return s
}

// FormatSigned formats an amount with an explicit sign, as used for ledger rows.
func FormatSigned(amount float64) string {
	if amount >= 0 {
		return "+" + FormatCurrency(amount)
	}
	return FormatCurrency(amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatPct formats a value already on the 0-100 scale.
func FormatPct(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatRunway formats a runway in days, capping long runways for display.
func FormatRunway(days int) string {
	if days > score.RunwayDisplayCap {
		return fmt.Sprintf("%d+ days", score.RunwayDisplayCap)
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatMonths formats a liquidity buffer given in months of expenses.
func FormatMonths(months float64, known bool) string {
	if !known {
		return "N/A"
	}
	return fmt.Sprintf("%.1f months", months)
}

// FormatDelta formats a money delta with sign.
func FormatDelta(current, previous float64) string {
	return FormatSigned(current - previous)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
