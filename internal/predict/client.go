// Package predict is a client for the external credit prediction service.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

const (
	// DefaultBaseURL is where the prediction service listens by default.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnavailable indicates the service could not be reached or failed.
	ErrUnavailable = errors.New("predict: service unavailable")
	// ErrRejected indicates the service refused the request body.
	ErrRejected = errors.New("predict: request rejected")
)

// Client calls the prediction service.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for baseURL. Empty values fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// BaseURL returns the service address this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict posts the request and returns the prediction with fallbacks
// applied for absent fields. Failures are not retried.
func (c *Client) Predict(ctx context.Context, r Request) (*Prediction, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("predict: encoding request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/predict", payload)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("predict: parsing response: %w", err)
	}
	return normalize(resp.Predictions), nil
}

// Health probes the service.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var hs HealthStatus
	if err := json.Unmarshal(body, &hs); err != nil {
		return nil, fmt.Errorf("predict: parsing health: %w", err)
	}
	return &hs, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("predict: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/gigfin/1.0")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("predict: reading response: %w", err)
	}
	return body, nil
}

// WorkOptions are the request fields the ledger cannot derive.
type WorkOptions struct {
	Incentives         float64
	PlatformCommission float64
	WeeklyWorkHours    float64
	OrdersPerMonth     float64
}

// monthsPerYear extrapolates the ledger, assumed to hold about a month of
// history, to annual figures.
const monthsPerYear = 12

// RequestFromState derives a request from the ledger: annual income and
// expenses from the ledger totals, debt from outstanding loans and the
// savings rate from net flow over income, clamped to [0, 1].
func RequestFromState(s *ledger.State, opts WorkOptions) Request {
	totals := pipeline.Totals(s.Transactions)

	var savingsRate float64
	if totals.Income > 0 {
		savingsRate = pipeline.NetFlow(s.Transactions) / totals.Income
		savingsRate = min(max(savingsRate, 0), 1)
	}

	return Request{
		AnnualIncome:       totals.Income * monthsPerYear,
		Incentives:         opts.Incentives,
		PlatformCommission: opts.PlatformCommission,
		TotalExpenses:      totals.Expenses * monthsPerYear,
		WeeklyWorkHours:    opts.WeeklyWorkHours,
		OrdersPerMonth:     opts.OrdersPerMonth,
		DebtAmount:         s.OutstandingDebt(),
		SavingsRate:        savingsRate,
	}
}

// ProfilePatch turns a prediction into a profile update.
func (p *Prediction) ProfilePatch() ledger.ProfilePatch {
	score, prob, maxLoan := p.GigCreditScore, p.ApprovalProbability, p.MaxLoanAmount
	return ledger.ProfilePatch{
		GigCreditScore:      &score,
		ApprovalProbability: &prob,
		MaxLoanAmount:       &maxLoan,
	}
}
