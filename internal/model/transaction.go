// Package model defines domain types for gigfin ledgers and reports.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and display format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component, held as UTC midnight.
type Date struct {
	time.Time
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses "YYYY-MM-DD" or an RFC 3339 timestamp, keeping only the date.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// Key returns the date formatted for use as a map key or display label.
func (d Date) Key() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// String implements fmt.Stringer.
func (d Date) String() string { return d.Key() }

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}

// UnmarshalJSON accepts "YYYY-MM-DD", RFC 3339, an empty string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TxType classifies a transaction.
type TxType string

const (
	TypeIncome     TxType = "income"
	TypeExpense    TxType = "expense"
	TypeWithdrawal TxType = "withdrawal"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeWithdrawal:
		return true
	}
	return false
}

// Sign returns +1 for money coming in and -1 for money going out.
func (t TxType) Sign() float64 {
	if t == TypeIncome {
		return 1
	}
	return -1
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID          string  `json:"id"`
	Type        TxType  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        Date    `json:"date"`
	Description string  `json:"description,omitempty"`
}

// SignedAmount returns the amount with the balance direction applied.
func (t Transaction) SignedAmount() float64 {
	return t.Type.Sign() * t.Amount
}

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanDefaulted LoanStatus = "defaulted"
)

// Loan is a micro-loan disbursed into the wallet.
type Loan struct {
	ID                string     `json:"id"`
	TotalAmount       float64    `json:"totalAmount"`
	RemainingAmount   float64    `json:"remainingAmount"`
	InstallmentAmount float64    `json:"installmentAmount"`
	NextDueDate       Date       `json:"nextDueDate"`
	Status            LoanStatus `json:"status"`
}
