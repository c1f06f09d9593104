package daemon

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/score"
	"github.com/theirongolddev/gigfin/internal/store"
)

var today = model.NewDate(2025, time.March, 15)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Transactions: 10,
		Karma:        40,
		Balance:      4500,
		Income:       9000.10,
		Expenses:     3000,
	}
	curr := Snapshot{
		Transactions: 12,
		Karma:        52,
		Balance:      5250.5,
		Income:       9800.30,
		Expenses:     3050,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Transactions != 2 {
		t.Fatalf("Transactions delta = %d, want 2", delta.Transactions)
	}
	if delta.Karma != 12 {
		t.Fatalf("Karma delta = %d, want 12", delta.Karma)
	}
	if math.Abs(delta.Balance-750.5) > 1e-9 {
		t.Fatalf("Balance delta = %.2f, want 750.50", delta.Balance)
	}
	if math.Abs(delta.Income-800.2) > 1e-9 {
		t.Fatalf("Income delta = %.2f, want 800.20", delta.Income)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DataDir:      ".",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "gigfin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := New(Config{
		Leaks: score.DefaultLeakOptions(),
		Today: func() model.Date { return today },
	}, st)
	return svc, st
}

func saveState(t *testing.T, st *store.Store, s *ledger.State) {
	t.Helper()
	data, err := s.Encode()
	require.NoError(t, err)
	require.NoError(t, st.SaveBlob(store.SnapshotKey, data))
}

func TestPollPublishesOnlyOnChange(t *testing.T) {
	svc, st := newTestService(t)

	state := ledger.New()
	state.Profile = ledger.DemoProfile()
	state.Transactions = ledger.Demo(today)
	saveState(t, st, state)

	svc.pollOnce()
	svc.pollOnce()
	require.Len(t, svc.events, 1)
	require.Equal(t, "snapshot", svc.events[0].Type)
	require.Equal(t, today.Key(), svc.events[0].Snapshot.AsOf)

	_, err := state.AddTransaction(model.Transaction{Type: model.TypeIncome, Amount: 750, Category: "Uber", Date: today})
	require.NoError(t, err)
	saveState(t, st, state)

	svc.pollOnce()
	require.Len(t, svc.events, 2)
	require.Equal(t, "dashboard_delta", svc.events[1].Type)
	require.Equal(t, 1, svc.events[1].Delta.Transactions)
	require.Equal(t, 750.0, svc.events[1].Delta.Balance)
	require.Equal(t, int64(3), svc.snapshotStatus().PollCount)
}

func TestPollMalformedSnapshotUsesDefaults(t *testing.T) {
	svc, st := newTestService(t)
	require.NoError(t, st.SaveBlob(store.SnapshotKey, []byte("{not json")))

	svc.pollOnce()
	status := svc.snapshotStatus()
	require.Empty(t, status.LastError)
	require.Equal(t, 0, status.Summary.Transactions)
	require.Equal(t, score.RunwayUnbounded, status.Summary.RunwayDays)
}

func TestRoutes(t *testing.T) {
	svc, st := newTestService(t)
	router := svc.Router()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())

	require.Equal(t, http.StatusServiceUnavailable, get("/v1/dashboard").Code)

	saveState(t, st, ledger.New())
	svc.pollOnce()
	svc.recordHistory()

	rec = get("/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Equal(t, today.Key(), dash.AsOf.Key())

	rec = get("/v1/history?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []store.ScoreRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	require.Equal(t, today.Key(), history[0].Day)

	require.Equal(t, http.StatusBadRequest, get("/v1/history?limit=x").Code)

	rec = get("/v1/events")
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)

	rec = get("/v1/status")
	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, int64(1), status.PollCount)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/status", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
