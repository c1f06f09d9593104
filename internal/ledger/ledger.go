// Package ledger holds the gig worker's snapshot (transactions, loans, profile
// and settings) and the operations that mutate it.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/gigfin/internal/model"
)

var (
	// ErrInvalidType is returned for a transaction type outside income/expense/withdrawal.
	ErrInvalidType = errors.New("ledger: invalid transaction type")
	// ErrInvalidAmount is returned for negative or non-positive amounts where one is required.
	ErrInvalidAmount = errors.New("ledger: invalid amount")
	// ErrDuplicateID is returned when a transaction id is already in the ledger.
	ErrDuplicateID = errors.New("ledger: duplicate transaction id")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	// ErrLoanRejected is returned when there is no positive balance history.
	ErrLoanRejected = errors.New("ledger: insufficient balance history to approve loan")
)

// State is the whole persisted snapshot. Transactions are most recent first.
type State struct {
	Transactions []model.Transaction `json:"transactions"`
	Loans        []model.Loan        `json:"loans"`
	Profile      model.UserProfile   `json:"userProfile"`
	Config       model.AppConfig     `json:"appConfig"`
}

// DefaultProfile is the profile of a fresh install.
func DefaultProfile() model.UserProfile {
	return model.UserProfile{
		Name:                "Gig Worker",
		CurrentBalance:      0,
		SavingsGoal:         50000,
		Theme:               "light",
		GigCreditScore:      650,
		ApprovalProbability: 0.5,
		MaxLoanAmount:       10000,
	}
}

// DefaultConfig is the scoring configuration of a fresh install.
func DefaultConfig() model.AppConfig {
	return model.AppConfig{
		FuelPrice:   102,
		DailyTarget: 800,
	}
}

// New returns an empty ledger with default profile and settings.
func New() *State {
	return &State{
		Profile: DefaultProfile(),
		Config:  DefaultConfig(),
	}
}

// Decode parses a snapshot blob on top of the defaults: fields absent from
// the blob keep their default values.
func Decode(data []byte) (*State, error) {
	s := New()
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return New(), fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}

// Encode serialises the snapshot blob.
func (s *State) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Find returns the transaction with the given id.
func (s *State) Find(id string) (model.Transaction, bool) {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// AddTransaction records a transaction at the head of the ledger and moves
// the wallet balance by its signed amount. An empty id is filled with a UUID.
func (s *State) AddTransaction(tx model.Transaction) (model.Transaction, error) {
	if !tx.Type.Valid() {
		return tx, fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}
	if !validAmount(tx.Amount) {
		return tx, fmt.Errorf("%w: %.2f", ErrInvalidAmount, tx.Amount)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	} else if _, exists := s.Find(tx.ID); exists {
		return tx, fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
	}
	if tx.Date.IsZero() {
		tx.Date = model.Today()
	}
	tx.Category = strings.TrimSpace(tx.Category)

	s.Transactions = append([]model.Transaction{tx}, s.Transactions...)
	s.Profile.CurrentBalance += tx.SignedAmount()
	return tx, nil
}

// Import adds statement transactions oldest first so the ledger stays most
// recent first. Transactions whose id is already present are skipped, which
// makes re-importing the same statement a no-op.
func (s *State) Import(txs []model.Transaction) (added, skipped int, err error) {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date.Time) })

	for _, tx := range sorted {
		if _, exists := s.Find(tx.ID); exists {
			skipped++
			continue
		}
		if _, err := s.AddTransaction(tx); err != nil {
			return added, skipped, fmt.Errorf("importing %s: %w", tx.ID, err)
		}
		added++
	}
	return added, skipped, nil
}

// Withdraw moves money out of the wallet to the bank account.
func (s *State) Withdraw(amount float64, on model.Date) (model.Transaction, error) {
	if !validAmount(amount) || amount == 0 {
		return model.Transaction{}, fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}
	if amount > s.Profile.CurrentBalance {
		return model.Transaction{}, ErrInsufficientFunds
	}
	return s.AddTransaction(model.Transaction{
		Type:        model.TypeWithdrawal,
		Amount:      amount,
		Category:    "Salary Transfer",
		Date:        on,
		Description: "Instant Withdrawal",
	})
}

// LoanTermDays is the gap between disbursement and the first installment.
const LoanTermDays = 7

// LoanInstallments is the number of equal installments a loan is split into.
const LoanInstallments = 4

// ApplyForLoan disburses a micro-loan into the wallet. Loans start active;
// nothing transitions them afterwards.
func (s *State) ApplyForLoan(amount float64, on model.Date) (model.Loan, error) {
	if !validAmount(amount) || amount == 0 {
		return model.Loan{}, fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}
	if s.Profile.CurrentBalance <= 0 {
		return model.Loan{}, ErrLoanRejected
	}

	loan := model.Loan{
		ID:                uuid.NewString(),
		TotalAmount:       amount,
		RemainingAmount:   amount,
		InstallmentAmount: amount / LoanInstallments,
		NextDueDate:       on.AddDays(LoanTermDays),
		Status:            model.LoanActive,
	}
	s.Loans = append(s.Loans, loan)

	if _, err := s.AddTransaction(model.Transaction{
		Type:        model.TypeIncome,
		Amount:      amount,
		Category:    "Gig-Tabby Loan",
		Date:        on,
		Description: "Loan Disbursement",
	}); err != nil {
		s.Loans = s.Loans[:len(s.Loans)-1]
		return model.Loan{}, err
	}
	return loan, nil
}

// OutstandingDebt sums the remaining amount over loans that are not paid off.
func (s *State) OutstandingDebt() float64 {
	var debt float64
	for _, l := range s.Loans {
		if l.Status != model.LoanPaid {
			debt += l.RemainingAmount
		}
	}
	return debt
}

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name                *string
	Occupation          *string
	Location            *string
	Email               *string
	CurrentBalance      *float64
	SavingsGoal         *float64
	AppStreak           *int
	GigCreditScore      *int
	ApprovalProbability *float64
	MaxLoanAmount       *float64
}

// UpdateProfile applies a partial profile update.
func (s *State) UpdateProfile(p ProfilePatch) error {
	if p.CurrentBalance != nil && !isFinite(*p.CurrentBalance) {
		return fmt.Errorf("%w: balance %.2f", ErrInvalidAmount, *p.CurrentBalance)
	}
	if p.SavingsGoal != nil && !validAmount(*p.SavingsGoal) {
		return fmt.Errorf("%w: savings goal %.2f", ErrInvalidAmount, *p.SavingsGoal)
	}
	if p.AppStreak != nil && *p.AppStreak < 0 {
		return fmt.Errorf("ledger: streak must be non-negative, got %d", *p.AppStreak)
	}

	setString(&s.Profile.Name, p.Name)
	setString(&s.Profile.Occupation, p.Occupation)
	setString(&s.Profile.Location, p.Location)
	setString(&s.Profile.Email, p.Email)
	if p.CurrentBalance != nil {
		s.Profile.CurrentBalance = *p.CurrentBalance
	}
	if p.SavingsGoal != nil {
		s.Profile.SavingsGoal = *p.SavingsGoal
	}
	if p.AppStreak != nil {
		s.Profile.AppStreak = *p.AppStreak
	}
	if p.GigCreditScore != nil {
		s.Profile.GigCreditScore = *p.GigCreditScore
	}
	if p.ApprovalProbability != nil {
		s.Profile.ApprovalProbability = *p.ApprovalProbability
	}
	if p.MaxLoanAmount != nil {
		s.Profile.MaxLoanAmount = *p.MaxLoanAmount
	}
	return nil
}

// ConfigPatch is a partial settings update; nil fields are left untouched.
type ConfigPatch struct {
	FuelPrice   *float64
	DailyTarget *float64
}

// UpdateConfig applies a partial settings update.
func (s *State) UpdateConfig(p ConfigPatch) error {
	if p.FuelPrice != nil {
		if !validAmount(*p.FuelPrice) {
			return fmt.Errorf("%w: fuel price %.2f", ErrInvalidAmount, *p.FuelPrice)
		}
		s.Config.FuelPrice = *p.FuelPrice
	}
	if p.DailyTarget != nil {
		if !validAmount(*p.DailyTarget) {
			return fmt.Errorf("%w: daily target %.2f", ErrInvalidAmount, *p.DailyTarget)
		}
		s.Config.DailyTarget = *p.DailyTarget
	}
	return nil
}

// validAmount reports whether v is a finite, non-negative money amount.
func validAmount(v float64) bool {
	return isFinite(v) && v >= 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
