package model

// BankDetails holds the payout account shown on the profile.
type BankDetails struct {
	AccountNo string `json:"accountNo"`
	IFSC      string `json:"ifsc"`
	BankName  string `json:"bankName"`
}

// UserProfile is the gig worker's profile and wallet.
type UserProfile struct {
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Gender      string      `json:"gender"`
	Occupation  string      `json:"occupation"`
	Email       string      `json:"email"`
	Location    string      `json:"location"`
	BankDetails BankDetails `json:"bankDetails"`

	CurrentBalance float64 `json:"currentBalance"` // wallet balance, signed
	SavingsGoal    float64 `json:"savingsGoal"`
	AppStreak      int     `json:"appStreak"`
	Theme          string  `json:"theme,omitempty"`

	// Filled in from the prediction service.
	GigCreditScore      int     `json:"gigCreditScore"`
	ApprovalProbability float64 `json:"approvalProbability"`
	MaxLoanAmount       float64 `json:"maxLoanAmount"`
}

// AppConfig holds the user-tunable scoring parameters.
type AppConfig struct {
	FuelPrice   float64 `json:"fuelPrice"`
	DailyTarget float64 `json:"dailyTarget"`
}
