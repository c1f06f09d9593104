package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/score"
)

var karmaCmd = &cobra.Command{
	Use:   "karma",
	Short: "KarmaScore with its consistency, performance and loyalty parts",
	RunE:  runKarma,
}

func init() {
	rootCmd.AddCommand(karmaCmd)
}

func runKarma(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	k := score.Karma(s.Transactions, s.Profile, s.Config, mustAsOf())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("KARMA  %s to %s", k.WindowStart.Key(), k.WindowEnd.Key())))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderGauge(k.Score, 30))
	fmt.Printf("  %s  %s\n\n", score.KarmaLabel(k.Score), cli.Muted("("+score.Segment(k.Score)+")"))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Component", "Detail", "Points"},
		Rows: [][]string{
			{"Consistency", fmt.Sprintf("%d of %d days worked", k.DaysWorked, score.KarmaWindowDays), fmt.Sprintf("%.1f / 40", k.Consistency)},
			{"Performance", fmt.Sprintf("avg %s vs target %s", cli.FormatCurrency(k.AvgDaily), cli.FormatCurrency(s.Config.DailyTarget)), fmt.Sprintf("%.0f / 30", k.Performance)},
			{"Loyalty", fmt.Sprintf("%d day streak", s.Profile.AppStreak), fmt.Sprintf("%.0f / 30", k.Loyalty)},
			{"---"},
			{"Total", "", fmt.Sprintf("%d / 100", k.Score)},
		},
	}))

	return nil
}
