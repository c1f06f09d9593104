package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/store"
)

func useTempData(t *testing.T) {
	t.Helper()
	prevDir, prevAsOf, prevDays := flagDataDir, flagAsOf, flagDays
	flagDataDir, flagAsOf, flagDays = t.TempDir(), "2025-03-15", 30
	t.Cleanup(func() { flagDataDir, flagAsOf, flagDays = prevDir, prevAsOf, prevDays })
}

func TestLoadStateFreshUsesConfigDefaults(t *testing.T) {
	useTempData(t)

	s, err := loadState()
	require.NoError(t, err)
	require.Empty(t, s.Transactions)
	require.Equal(t, appCfg.Defaults.DailyTarget, s.Config.DailyTarget)
	require.Equal(t, appCfg.Defaults.FuelPrice, s.Config.FuelPrice)
}

func TestAddWithdrawAndLoanPersist(t *testing.T) {
	useTempData(t)
	addCategory, addDesc, addDate = "feul", "Petrol", ""
	t.Cleanup(func() { addCategory, addDesc = "", "" })

	require.NoError(t, runAdd(nil, []string{"income", "1200"}))
	require.NoError(t, runAdd(nil, []string{"expense", "300"}))
	require.Error(t, runAdd(nil, []string{"bonus", "10"}))
	require.Error(t, runAdd(nil, []string{"income", "lots"}))

	require.Error(t, runWithdraw(nil, []string{"5000"}))
	require.NoError(t, runWithdraw(nil, []string{"400"}))
	require.NoError(t, runLoanApply(nil, []string{"2000"}))

	s, err := loadState()
	require.NoError(t, err)
	require.Len(t, s.Transactions, 4)
	require.Equal(t, "Fuel", s.Transactions[2].Category)
	require.Equal(t, "2025-03-15", s.Transactions[0].Date.Key())
	require.Len(t, s.Loans, 1)
	require.InDelta(t, 1200-300-400+2000, s.Profile.CurrentBalance, 1e-9)
}

func TestUpdateStateDiscardsFailedChanges(t *testing.T) {
	useTempData(t)

	_, err := updateState(func(s *ledger.State) error {
		_, err := s.Withdraw(100, mustAsOf())
		return err
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	st, err := openStore()
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	data, err := st.LoadBlob(store.SnapshotKey)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestReadStateMalformedBlobFallsBack(t *testing.T) {
	useTempData(t)

	st, err := openStore()
	require.NoError(t, err)
	require.NoError(t, st.SaveBlob(store.SnapshotKey, []byte("{broken")))
	require.NoError(t, st.Close())

	s, err := loadState()
	require.NoError(t, err)
	require.Empty(t, s.Transactions)
	require.Equal(t, ledger.DefaultProfile().Name, s.Profile.Name)
}
