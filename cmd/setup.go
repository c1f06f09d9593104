package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/config"
	"github.com/theirongolddev/gigfin/internal/ledger"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()
	s, err := loadState()
	if err != nil {
		return err
	}

	var (
		name        = s.Profile.Name
		occupation  = s.Profile.Occupation
		dailyTarget = formatAmount(s.Config.DailyTarget)
		fuelPrice   = formatAmount(s.Config.FuelPrice)
		savingsGoal = formatAmount(s.Profile.SavingsGoal)
		days        = cfg.General.DefaultDays
		logLevel    = cfg.General.LogLevel
		predictor   = cfg.Predictor.BaseURL
	)

	fmt.Println()
	fmt.Println("  Welcome to gigfin!")
	if n := len(s.Transactions); n > 0 {
		fmt.Printf("  Found %s transactions in %s\n", formatNumber(int64(n)), dataDir())
	}
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&name),
			huh.NewInput().Title("Occupation").Placeholder("Swiggy Partner").Value(&occupation),
		),
		huh.NewGroup(
			huh.NewInput().Title("Daily income target").Value(&dailyTarget).Validate(validateAmount),
			huh.NewInput().Title("Fuel price per litre").Value(&fuelPrice).Validate(validateAmount),
			huh.NewInput().Title("Savings goal").Value(&savingsGoal).Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&days),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&logLevel),
			huh.NewInput().
				Title("Credit prediction service URL").
				Value(&predictor).
				Validate(validateURL),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	target, _ := strconv.ParseFloat(strings.TrimSpace(dailyTarget), 64)
	fuel, _ := strconv.ParseFloat(strings.TrimSpace(fuelPrice), 64)
	goal, _ := strconv.ParseFloat(strings.TrimSpace(savingsGoal), 64)

	cfg.General.DefaultDays = days
	cfg.General.LogLevel = logLevel
	cfg.Predictor.BaseURL = strings.TrimRight(strings.TrimSpace(predictor), "/")
	cfg.Defaults.DailyTarget = target
	cfg.Defaults.FuelPrice = fuel

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, err = updateState(func(s *ledger.State) error {
		if err := s.UpdateProfile(ledger.ProfilePatch{
			Name:        &name,
			Occupation:  &occupation,
			SavingsGoal: &goal,
		}); err != nil {
			return err
		}
		return s.UpdateConfig(ledger.ConfigPatch{FuelPrice: &fuel, DailyTarget: &target})
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `gigfin setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("enter a URL like http://127.0.0.1:8000")
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
