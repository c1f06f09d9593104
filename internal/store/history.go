package store

import (
	"fmt"
	"time"
)

// ScoreRecord is one day's dashboard headline numbers.
type ScoreRecord struct {
	Day          string  `json:"day"` // YYYY-MM-DD
	Karma        int     `json:"karma"`
	ExpenseRatio float64 `json:"expense_ratio"`
	RunwayDays   int     `json:"runway_days"`
	Balance      float64 `json:"balance"`
	NetFlow      float64 `json:"net_flow"`
}

// RecordScore stores the record for its day, replacing an earlier one.
func (s *Store) RecordScore(r ScoreRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO score_history
		(day, karma, expense_ratio, runway_days, balance, net_flow, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Day, r.Karma, r.ExpenseRatio, r.RunwayDays, r.Balance, r.NetFlow, now)
	if err != nil {
		return fmt.Errorf("recording score for %s: %w", r.Day, err)
	}
	return nil
}

// ScoreHistory returns up to limit records, most recent day first.
// A limit of zero or less returns everything.
func (s *Store) ScoreHistory(limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT day, karma, expense_ratio, runway_days, balance, net_flow
		FROM score_history ORDER BY day DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		if err := rows.Scan(&r.Day, &r.Karma, &r.ExpenseRatio, &r.RunwayDays, &r.Balance, &r.NetFlow); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
