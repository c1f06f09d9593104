package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/score"
)

var leaksCmd = &cobra.Command{
	Use:   "leaks",
	Short: "Fuel spikes and oversized expenses",
	RunE:  runLeaks,
}

var leaksNoPlaceholder bool

func init() {
	leaksCmd.Flags().BoolVar(&leaksNoPlaceholder, "no-placeholder", false, "Do not report a hidden fee when nothing was found")
	rootCmd.AddCommand(leaksCmd)
}

func runLeaks(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	opts := leakOptions()
	if leaksNoPlaceholder {
		opts.Placeholder = false
	}
	leaks := score.DetectLeaks(s.Transactions, s.Profile.CurrentBalance, opts)

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEAK DETECTOR"))
	fmt.Println()

	if len(leaks) == 0 {
		fmt.Println("  No leaks detected.")
		return nil
	}

	rows := make([][]string, 0, len(leaks))
	for _, l := range leaks {
		rows = append(rows, []string{
			l.ID,
			string(l.Type),
			l.Date.Key(),
			cli.FormatCurrency(l.Amount),
			riskLabel(l.Risk),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Type", "Date", "Amount", "Risk"},
		Rows:    rows,
	}))

	return nil
}

func riskLabel(r model.Risk) string {
	switch r {
	case model.RiskHigh:
		return cli.Bad(string(r))
	case model.RiskMedium:
		return cli.Warn(string(r))
	default:
		return cli.Muted(string(r))
	}
}
