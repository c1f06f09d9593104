package ledger

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/model"
)

var today = model.NewDate(2025, time.April, 10)

func TestAddTransaction_PrependsAndMovesBalance(t *testing.T) {
	s := New()

	inc, err := s.AddTransaction(model.Transaction{Type: model.TypeIncome, Amount: 1000, Category: "Uber", Date: today})
	require.NoError(t, err)
	require.NotEmpty(t, inc.ID)

	_, err = s.AddTransaction(model.Transaction{Type: model.TypeExpense, Amount: 250, Category: " Fuel ", Date: today})
	require.NoError(t, err)

	require.Len(t, s.Transactions, 2)
	require.Equal(t, model.TypeExpense, s.Transactions[0].Type)
	require.Equal(t, "Fuel", s.Transactions[0].Category)
	require.Equal(t, 750.0, s.Profile.CurrentBalance)
}

func TestAddTransaction_Rejects(t *testing.T) {
	s := New()

	_, err := s.AddTransaction(model.Transaction{Type: "refund", Amount: 1})
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = s.AddTransaction(model.Transaction{Type: model.TypeIncome, Amount: -1})
	require.ErrorIs(t, err, ErrInvalidAmount)

	for _, amt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = s.AddTransaction(model.Transaction{Type: model.TypeIncome, Amount: amt})
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amt)
	}

	_, err = s.AddTransaction(model.Transaction{ID: "x", Type: model.TypeIncome, Amount: 1})
	require.NoError(t, err)
	_, err = s.AddTransaction(model.Transaction{ID: "x", Type: model.TypeIncome, Amount: 1})
	require.ErrorIs(t, err, ErrDuplicateID)

	require.Len(t, s.Transactions, 1)
	require.Equal(t, 1.0, s.Profile.CurrentBalance)
}

func TestWithdraw(t *testing.T) {
	s := New()
	s.Profile.CurrentBalance = 500

	_, err := s.Withdraw(600, today)
	require.True(t, errors.Is(err, ErrInsufficientFunds))
	require.Empty(t, s.Transactions)
	require.Equal(t, 500.0, s.Profile.CurrentBalance)

	tx, err := s.Withdraw(500, today)
	require.NoError(t, err)
	require.Equal(t, model.TypeWithdrawal, tx.Type)
	require.Equal(t, "Salary Transfer", tx.Category)
	require.Zero(t, s.Profile.CurrentBalance)
}

func TestApplyForLoan(t *testing.T) {
	s := New()

	_, err := s.ApplyForLoan(4000, today)
	require.ErrorIs(t, err, ErrLoanRejected)
	require.Empty(t, s.Loans)

	s.Profile.CurrentBalance = 100
	loan, err := s.ApplyForLoan(4000, today)
	require.NoError(t, err)
	require.Equal(t, model.LoanActive, loan.Status)
	require.Equal(t, 1000.0, loan.InstallmentAmount)
	require.Equal(t, "2025-04-17", loan.NextDueDate.Key())
	require.Len(t, s.Loans, 1)

	require.Equal(t, 4100.0, s.Profile.CurrentBalance)
	require.Equal(t, "Gig-Tabby Loan", s.Transactions[0].Category)
	require.Equal(t, 4000.0, s.OutstandingDebt())
}

func TestNonFiniteAmountsLeaveStateEncodable(t *testing.T) {
	s := New()
	s.Profile.CurrentBalance = 1000
	nan, inf := math.NaN(), math.Inf(1)

	_, err := s.Withdraw(nan, today)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.ApplyForLoan(inf, today)
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.ErrorIs(t, s.UpdateProfile(ProfilePatch{CurrentBalance: &nan}), ErrInvalidAmount)
	require.ErrorIs(t, s.UpdateProfile(ProfilePatch{SavingsGoal: &inf}), ErrInvalidAmount)
	require.ErrorIs(t, s.UpdateConfig(ConfigPatch{FuelPrice: &nan}), ErrInvalidAmount)
	require.ErrorIs(t, s.UpdateConfig(ConfigPatch{DailyTarget: &inf}), ErrInvalidAmount)

	require.Empty(t, s.Transactions)
	require.Empty(t, s.Loans)
	require.Equal(t, 1000.0, s.Profile.CurrentBalance)
	_, err = s.Encode()
	require.NoError(t, err)
}

func TestDecode_MergesOverDefaults(t *testing.T) {
	s, err := Decode([]byte(`{"userProfile":{"name":"Asha","currentBalance":1200},"transactions":[{"id":"1","type":"income","amount":500,"category":"Uber","date":"2025-04-01"}]}`))
	require.NoError(t, err)
	require.Equal(t, "Asha", s.Profile.Name)
	require.Equal(t, 1200.0, s.Profile.CurrentBalance)
	require.Equal(t, 50000.0, s.Profile.SavingsGoal)
	require.Equal(t, 650, s.Profile.GigCreditScore)
	require.Equal(t, DefaultConfig(), s.Config)
	require.Len(t, s.Transactions, 1)
}

func TestDecode_MalformedFallsBackToDefaults(t *testing.T) {
	s, err := Decode([]byte(`{"transactions": [`))
	require.Error(t, err)
	require.NotNil(t, s)
	require.Equal(t, DefaultProfile(), s.Profile)
	require.Empty(t, s.Transactions)
}

func TestEncodeDecode(t *testing.T) {
	s := New()
	s.Transactions = Demo(today)
	s.Profile = DemoProfile()

	data, err := s.Encode()
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(s.Transactions), len(back.Transactions))
	require.Equal(t, s.Profile, back.Profile)
	require.Equal(t, s.Transactions[2].Date.Key(), back.Transactions[2].Date.Key())
}

func TestUpdateProfileAndConfig(t *testing.T) {
	s := New()
	goal := 80000.0
	streak := 4
	require.NoError(t, s.UpdateProfile(ProfilePatch{SavingsGoal: &goal, AppStreak: &streak}))
	require.Equal(t, 80000.0, s.Profile.SavingsGoal)
	require.Equal(t, 4, s.Profile.AppStreak)
	require.Equal(t, "Gig Worker", s.Profile.Name)

	bad := -1
	require.Error(t, s.UpdateProfile(ProfilePatch{AppStreak: &bad}))

	target := 950.0
	require.NoError(t, s.UpdateConfig(ConfigPatch{DailyTarget: &target}))
	require.Equal(t, 950.0, s.Config.DailyTarget)
	require.Equal(t, 102.0, s.Config.FuelPrice)
}

func TestSeed_IsDeterministicForAFixedSource(t *testing.T) {
	a, b := New(), New()
	require.NoError(t, a.Seed(365000, 9125, today, rand.New(rand.NewSource(7))))
	require.NoError(t, b.Seed(365000, 9125, today, rand.New(rand.NewSource(7))))
	require.Equal(t, a.Transactions, b.Transactions)

	require.NotEmpty(t, a.Transactions)
	for _, tx := range a.Transactions {
		require.False(t, tx.Date.After(today.Time))
		require.False(t, tx.Date.Before(today.AddDays(-(SeedDays - 1)).Time))
		switch tx.Type {
		case model.TypeIncome:
			require.InDelta(t, 1000, tx.Amount, 201)
		case model.TypeExpense:
			require.InDelta(t, 300, tx.Amount, 61)
			require.Contains(t, []string{"Fuel", "Food"}, tx.Category)
			if tx.Category == "Fuel" {
				require.Equal(t, "Petrol", tx.Description)
			} else {
				require.Equal(t, "Lunch", tx.Description)
			}
		}
	}
	require.Zero(t, a.Profile.CurrentBalance)
}

func TestImport_SkipsKnownIDsAndKeepsNewestFirst(t *testing.T) {
	s := New()
	batch := []model.Transaction{
		{ID: "b", Type: model.TypeExpense, Amount: 100, Category: "Fuel", Date: today},
		{ID: "a", Type: model.TypeIncome, Amount: 900, Category: "Uber", Date: today.AddDays(-2)},
	}

	added, skipped, err := s.Import(batch)
	require.NoError(t, err)
	require.Equal(t, 2, added)
	require.Equal(t, 0, skipped)
	require.Equal(t, "b", s.Transactions[0].ID)
	require.Equal(t, 800.0, s.Profile.CurrentBalance)

	added, skipped, err = s.Import(batch)
	require.NoError(t, err)
	require.Equal(t, 0, added)
	require.Equal(t, 2, skipped)
	require.Len(t, s.Transactions, 2)
	require.Equal(t, 800.0, s.Profile.CurrentBalance)
}
