package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the worker profile",
	RunE:  runProfile,
}

var (
	profName       string
	profOccupation string
	profLocation   string
	profEmail      string
	profBalance    float64
	profGoal       float64
	profStreak     int
)

func init() {
	f := profileCmd.Flags()
	f.StringVar(&profName, "name", "", "Display name")
	f.StringVar(&profOccupation, "occupation", "", "Occupation, e.g. Swiggy Partner")
	f.StringVar(&profLocation, "location", "", "City")
	f.StringVar(&profEmail, "email", "", "Email address")
	f.Float64Var(&profBalance, "balance", 0, "Set the wallet balance")
	f.Float64Var(&profGoal, "savings-goal", 0, "Savings goal")
	f.IntVar(&profStreak, "streak", 0, "App streak in days")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	changed := cmd.Flags().Changed
	var patch ledger.ProfilePatch
	if changed("name") {
		patch.Name = &profName
	}
	if changed("occupation") {
		patch.Occupation = &profOccupation
	}
	if changed("location") {
		patch.Location = &profLocation
	}
	if changed("email") {
		patch.Email = &profEmail
	}
	if changed("balance") {
		patch.CurrentBalance = &profBalance
	}
	if changed("savings-goal") {
		patch.SavingsGoal = &profGoal
	}
	if changed("streak") {
		patch.AppStreak = &profStreak
	}

	var (
		s   *ledger.State
		err error
	)
	if patch == (ledger.ProfilePatch{}) {
		s, err = loadState()
	} else {
		s, err = updateState(func(s *ledger.State) error { return s.UpdateProfile(patch) })
	}
	if err != nil {
		return err
	}

	p := s.Profile
	fmt.Println()
	fmt.Println(cli.RenderTitle("PROFILE"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Name", p.Name},
			{"Occupation", p.Occupation},
			{"Location", p.Location},
			{"Email", p.Email},
			{"Bank", p.BankDetails.BankName},
			{"---"},
			{"Wallet Balance", cli.FormatCurrency(p.CurrentBalance)},
			{"Savings Goal", cli.FormatCurrency(p.SavingsGoal)},
			{"App Streak", fmt.Sprintf("%d days", p.AppStreak)},
		},
	}))
	return nil
}
