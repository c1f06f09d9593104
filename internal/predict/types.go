package predict

// Request is the fixed-shape body sent to the prediction service.
type Request struct {
	AnnualIncome       float64 `json:"annual_income"`
	Incentives         float64 `json:"incentives"`
	PlatformCommission float64 `json:"platform_commission"`
	TotalExpenses      float64 `json:"total_expenses"`
	WeeklyWorkHours    float64 `json:"weekly_work_hours"`
	OrdersPerMonth     float64 `json:"orders_per_month"`
	DebtAmount         float64 `json:"debt_amount"`
	SavingsRate        float64 `json:"savings_rate"`
}

// Response is the raw service response. Every prediction field may be absent.
type Response struct {
	Predictions *RawPredictions `json:"predictions"`
	Message     string          `json:"message,omitempty"`
}

// RawPredictions mirrors the service's prediction object.
type RawPredictions struct {
	GigCreditScore      *float64 `json:"gig_credit_score"`
	ApprovalProbability *float64 `json:"approval_probability"`
	MaxLoanAmount       *float64 `json:"max_loan_amount"`
}

// Prediction is the normalized result with fallbacks applied.
type Prediction struct {
	GigCreditScore      int     `json:"gigCreditScore"`
	ApprovalProbability float64 `json:"approvalProbability"`
	MaxLoanAmount       float64 `json:"maxLoanAmount"`
}

// HealthStatus is the body of the service's health probe.
type HealthStatus struct {
	Status       string `json:"status"`
	ModelVersion string `json:"model_version"`
	ModelLoaded  bool   `json:"model_loaded"`
}

// Fallbacks used when the service omits a field.
const (
	FallbackCreditScore         = 650
	FallbackApprovalProbability = 0
	FallbackMaxLoanAmount       = 0
)

func normalize(raw *RawPredictions) *Prediction {
	p := &Prediction{
		GigCreditScore:      FallbackCreditScore,
		ApprovalProbability: FallbackApprovalProbability,
		MaxLoanAmount:       FallbackMaxLoanAmount,
	}
	if raw == nil {
		return p
	}
	if raw.GigCreditScore != nil {
		p.GigCreditScore = int(*raw.GigCreditScore)
	}
	if raw.ApprovalProbability != nil {
		p.ApprovalProbability = *raw.ApprovalProbability
	}
	if raw.MaxLoanAmount != nil {
		p.MaxLoanAmount = *raw.MaxLoanAmount
	}
	return p
}
