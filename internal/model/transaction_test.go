package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptsDateAndTimestamp(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	require.Equal(t, "2025-03-09", d.Key())

	d, err = ParseDate("2025-03-09T22:15:00Z")
	require.NoError(t, err)
	require.Equal(t, "2025-03-09", d.Key())

	_, err = ParseDate("09/03/2025")
	require.Error(t, err)
}

func TestDate_JSONRoundTripsAsPlainDate(t *testing.T) {
	tx := Transaction{ID: "1", Type: TypeIncome, Amount: 1200, Category: "Uber", Date: NewDate(2025, time.June, 1)}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	require.Contains(t, string(data), `"date":"2025-06-01"`)

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Date.Equal(tx.Date.Time))
}

func TestDate_UnmarshalEmptyAndNull(t *testing.T) {
	var l Loan
	require.NoError(t, json.Unmarshal([]byte(`{"nextDueDate":null}`), &l))
	require.True(t, l.NextDueDate.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`{"nextDueDate":""}`), &l))
	require.True(t, l.NextDueDate.IsZero())
	require.Error(t, json.Unmarshal([]byte(`{"nextDueDate":"soon"}`), &l))
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d := DateOf(time.Date(2025, time.January, 31, 23, 59, 0, 0, loc))
	require.Equal(t, "2025-01-31", d.Key())
	require.Equal(t, "2025-02-01", d.AddDays(1).Key())
}

func TestTxType_SignAndValid(t *testing.T) {
	require.Equal(t, 1.0, TypeIncome.Sign())
	require.Equal(t, -1.0, TypeExpense.Sign())
	require.Equal(t, -1.0, TypeWithdrawal.Sign())
	require.True(t, TypeWithdrawal.Valid())
	require.False(t, TxType("refund").Valid())

	tx := Transaction{Type: TypeExpense, Amount: 300}
	require.Equal(t, -300.0, tx.SignedAmount())
}
