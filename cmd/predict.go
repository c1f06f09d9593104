package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/config"
	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/logger"
	"github.com/theirongolddev/gigfin/internal/predict"
	"github.com/theirongolddev/gigfin/internal/score"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Ask the credit prediction service for a gig credit score",
	RunE:  runPredict,
}

var (
	predictHours      float64
	predictOrders     float64
	predictIncentives float64
	predictCommission float64
	predictApply      bool
	predictHealth     bool
)

func init() {
	predictCmd.Flags().Float64Var(&predictHours, "hours", 40, "Weekly work hours")
	predictCmd.Flags().Float64Var(&predictOrders, "orders", 300, "Orders per month")
	predictCmd.Flags().Float64Var(&predictIncentives, "incentives", 0, "Annual incentives")
	predictCmd.Flags().Float64Var(&predictCommission, "commission", 0, "Platform commission paid per year")
	predictCmd.Flags().BoolVar(&predictApply, "apply", false, "Save the prediction to the profile")
	predictCmd.Flags().BoolVar(&predictHealth, "health", false, "Only probe the service health endpoint")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	client := predict.NewClient(config.PredictorURL(appCfg), config.PredictorTimeout(appCfg))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if predictHealth {
		h, err := client.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %s (model %s, loaded %t)\n", client.BaseURL(), h.Status, h.ModelVersion, h.ModelLoaded)
		return nil
	}

	s, err := loadState()
	if err != nil {
		return err
	}

	req := predict.RequestFromState(s, predict.WorkOptions{
		Incentives:         predictIncentives,
		PlatformCommission: predictCommission,
		WeeklyWorkHours:    predictHours,
		OrdersPerMonth:     predictOrders,
	})
	logger.Get().Debug("requesting prediction",
		zap.String("base_url", client.BaseURL()),
		zap.Float64("annual_income", req.AnnualIncome),
		zap.Float64("savings_rate", req.SavingsRate),
	)

	p, err := client.Predict(ctx, req)
	if err != nil {
		return fmt.Errorf("credit prediction failed: %w", err)
	}

	if predictApply {
		if _, err := updateState(func(s *ledger.State) error { return s.UpdateProfile(p.ProfilePatch()) }); err != nil {
			return err
		}
	}

	g := score.Credit(p.GigCreditScore)
	eligible := cli.Bad("Not eligible")
	if g.Eligible {
		eligible = cli.Good("Eligible")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CREDIT PREDICTION"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Annual Income", cli.FormatCurrency(req.AnnualIncome)},
			{"Annual Expenses", cli.FormatCurrency(req.TotalExpenses)},
			{"Debt", cli.FormatCurrency(req.DebtAmount)},
			{"Savings Rate", cli.FormatPercent(req.SavingsRate)},
			{"---"},
			{"Gig Credit Score", fmt.Sprintf("%d", p.GigCreditScore)},
			{"Micro-loan", eligible},
			{"Approval Probability", cli.FormatPercent(p.ApprovalProbability)},
			{"Max Loan Amount", cli.FormatCurrency(p.MaxLoanAmount)},
		},
	}))
	if predictApply {
		fmt.Println("  Saved to profile.")
	} else {
		fmt.Println(cli.Muted("  Run with --apply to save to the profile."))
	}
	return nil
}
