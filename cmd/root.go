package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/config"
	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/logger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/pipeline"
	"github.com/theirongolddev/gigfin/internal/score"
	"github.com/theirongolddev/gigfin/internal/store"
)

var (
	flagDays     int
	flagAsOf     string
	flagNoCache  bool
	flagDataDir  string
	flagQuiet    bool
	flagLogLevel string
)

// appCfg is the loaded config file, populated before any command runs.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "gigfin",
	Short:             "Financial wellness for gig workers",
	Long:              "Track gig income and spending: karma score, leak detection, cashflow runway and more.",
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = logger.Sync() },
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Reimport statement files even if unchanged")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory holding gigfin.db")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// initApp loads the config file and initializes logging. It runs before every command.
func initApp(_ *cobra.Command, _ []string) error {
	cfg, cfgErr := config.Load()
	appCfg = cfg

	levelName := flagLogLevel
	if levelName == "" {
		levelName = appCfg.General.LogLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if err := logger.Init(developmentLogging(), level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	if cfgErr != nil {
		logger.Get().Warn("config unreadable, using defaults", zap.Error(cfgErr))
	}

	if flagDays <= 0 {
		flagDays = appCfg.General.DefaultDays
	}
	if flagDays <= 0 {
		flagDays = 30
	}
	if _, err := asOf(); err != nil {
		return err
	}
	return nil
}

// developmentLogging selects the console encoder for interactive use. The
// detached daemon child writes JSON lines to its log file instead.
func developmentLogging() bool {
	return !flagDaemonChild
}

// dataDir resolves the data directory: flag, then config, then the XDG default.
func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if appCfg.General.DataDir != "" {
		return appCfg.General.DataDir
	}
	return pipeline.DataDir()
}

// asOf returns the reference date engines window against.
func asOf() (model.Date, error) {
	if flagAsOf == "" {
		return model.Today(), nil
	}
	d, err := model.ParseDate(flagAsOf)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid --as-of %q: %w", flagAsOf, err)
	}
	return d, nil
}

// mustAsOf is asOf for commands; initApp has already validated the flag.
func mustAsOf() model.Date {
	d, _ := asOf()
	return d
}

// window returns the inclusive [since, until] range covered by --days.
func window() (model.Date, model.Date) {
	until := mustAsOf()
	return until.AddDays(-(flagDays - 1)), until
}

func leakOptions() score.LeakOptions {
	return score.LeakOptions{Placeholder: appCfg.Leaks.Placeholder}
}

// freshState is the snapshot of a first run, seeded from the config defaults.
func freshState() *ledger.State {
	s := ledger.New()
	if appCfg.Defaults.DailyTarget > 0 {
		s.Config.DailyTarget = appCfg.Defaults.DailyTarget
	}
	if appCfg.Defaults.FuelPrice > 0 {
		s.Config.FuelPrice = appCfg.Defaults.FuelPrice
	}
	return s
}

func openStore() (*store.Store, error) {
	st, err := store.Open(pipeline.DBPath(dataDir()))
	if err != nil {
		return nil, fmt.Errorf("opening data store: %w", err)
	}
	return st, nil
}

// readState decodes the persisted snapshot. A malformed blob is logged and
// replaced by a fresh snapshot.
func readState(st *store.Store) (*ledger.State, error) {
	data, err := st.LoadBlob(store.SnapshotKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return freshState(), nil
	}
	s, err := ledger.Decode(data)
	if err != nil {
		logger.Get().Warn("stored snapshot is malformed, starting from defaults", zap.Error(err))
		return freshState(), nil
	}
	return s, nil
}

func writeState(st *store.Store, s *ledger.State) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := st.SaveBlob(store.SnapshotKey, data); err != nil {
		return err
	}
	logger.Get().Debug("snapshot saved",
		zap.Int("transactions", len(s.Transactions)),
		zap.Int("loans", len(s.Loans)),
	)
	return nil
}

// loadState is the shared read path used by every reporting command.
func loadState() (*ledger.State, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()
	return readState(st)
}

// updateState loads the snapshot, applies fn and saves the result when fn succeeds.
func updateState(fn func(s *ledger.State) error) (*ledger.State, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	s, err := readState(st)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := writeState(st, s); err != nil {
		return nil, err
	}
	return s, nil
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
