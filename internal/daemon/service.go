// Package daemon provides the long-running dashboard monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/logger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/pipeline"
	"github.com/theirongolddev/gigfin/internal/score"
	"github.com/theirongolddev/gigfin/internal/store"
)

// Store is the persistence the daemon reads snapshots from and writes
// score history to.
type Store interface {
	LoadBlob(key string) ([]byte, error)
	RecordScore(r store.ScoreRecord) error
	ScoreHistory(limit int) ([]store.ScoreRecord, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir         string
	Interval        time.Duration
	Addr            string
	EventsBuffer    int
	HistorySchedule string // cron spec; empty disables score history
	Leaks           score.LeakOptions
	Today           func() model.Date
}

// Snapshot is a compact dashboard state for status/event payloads.
type Snapshot struct {
	At           time.Time `json:"at"`
	AsOf         string    `json:"as_of"`
	Transactions int       `json:"transactions"`
	Karma        int       `json:"karma"`
	Balance      float64   `json:"balance"`
	Income       float64   `json:"income"`
	Expenses     float64   `json:"expenses"`
	ExpenseRatio float64   `json:"expense_ratio"`
	RunwayDays   int       `json:"runway_days"`
	Leaks        int       `json:"leaks"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Transactions int     `json:"transactions"`
	Karma        int     `json:"karma"`
	Balance      float64 `json:"balance"`
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.Karma == 0 &&
		d.Balance == 0 &&
		d.Income == 0 &&
		d.Expenses == 0
}

// Event is emitted whenever the dashboard snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	HistorySchedule string    `json:"history_schedule,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg   Config
	store Store
	log   *zap.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	dashboard   model.Dashboard
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, st Store) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Today == nil {
		cfg.Today = model.Today
	}

	return &Service{
		cfg:       cfg,
		store:     st,
		log:       logger.Get().Named("daemon"),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Router returns the HTTP routes served by the daemon.
func (s *Service) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Run starts HTTP endpoints, polling and the history schedule until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var scheduler *cron.Cron
	if s.cfg.HistorySchedule != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(s.cfg.HistorySchedule, s.recordHistory); err != nil {
			return fmt.Errorf("parsing history schedule %q: %w", s.cfg.HistorySchedule, err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.Duration("interval", s.cfg.Interval))

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()
	if scheduler != nil {
		s.recordHistory()
		scheduler.Start()
		defer scheduler.Stop()
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	state, err := s.loadState()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("poll failed", zap.Error(err))
		return
	}

	now := time.Now()
	dash := pipeline.BuildDashboard(state, s.cfg.Today(), s.cfg.Leaks)
	snap := snapshotFromDashboard(dash, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.dashboard = dash
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "dashboard_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// loadState reads the ledger blob. A malformed blob is logged and replaced
// by defaults rather than failing the poll.
func (s *Service) loadState() (*ledger.State, error) {
	data, err := s.store.LoadBlob(store.SnapshotKey)
	if err != nil {
		return nil, err
	}
	state, err := ledger.Decode(data)
	if err != nil {
		s.log.Warn("snapshot malformed, using defaults", zap.Error(err))
	}
	return state, nil
}

func (s *Service) recordHistory() {
	s.mu.RLock()
	has, dash := s.hasSnapshot, s.dashboard
	s.mu.RUnlock()
	if !has {
		return
	}

	rec := recordFromDashboard(dash)
	if err := s.store.RecordScore(rec); err != nil {
		s.log.Warn("recording score history", zap.Error(err))
		return
	}
	s.log.Debug("score history recorded", zap.String("day", rec.Day), zap.Int("karma", rec.Karma))
}

func snapshotFromDashboard(d model.Dashboard, at time.Time) Snapshot {
	return Snapshot{
		At:           at,
		AsOf:         d.AsOf.Key(),
		Transactions: d.Totals.Transactions,
		Karma:        d.Karma.Score,
		Balance:      d.Balance,
		Income:       d.Totals.Income,
		Expenses:     d.Totals.Expenses,
		ExpenseRatio: d.Shield.ExpenseRatio,
		RunwayDays:   d.Forecast.RunwayDays,
		Leaks:        len(d.Leaks),
	}
}

func recordFromDashboard(d model.Dashboard) store.ScoreRecord {
	return store.ScoreRecord{
		Day:          d.AsOf.Key(),
		Karma:        d.Karma.Score,
		ExpenseRatio: d.Shield.ExpenseRatio,
		RunwayDays:   d.Forecast.RunwayDays,
		Balance:      d.Balance,
		NetFlow:      d.NetFlow,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions: curr.Transactions - prev.Transactions,
		Karma:        curr.Karma - prev.Karma,
		Balance:      roundCents(curr.Balance - prev.Balance),
		Income:       roundCents(curr.Income - prev.Income),
		Expenses:     roundCents(curr.Expenses - prev.Expenses),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		HistorySchedule: s.cfg.HistorySchedule,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	has, dash := s.hasSnapshot, s.dashboard
	s.mu.RUnlock()

	if !has {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dash)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, events)
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.store.ScoreHistory(limit)
	if err != nil {
		s.log.Warn("reading score history", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.ScoreRecord{}
	}
	writeJSON(w, records)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
