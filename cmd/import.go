package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/logger"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import platform statements (.csv, .jsonl) from a file or directory",
	Long: "Import payout and spend statements. Files already imported and unchanged\n" +
		"since are skipped unless --no-cache is given; rows already in the ledger\n" +
		"are never added twice.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	path := args[0]

	progressFn := func(current, total int) {
		if current%10 == 0 || current == total {
			progress("\r  Parsing [%d/%d]", current, total)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var (
		result *pipeline.LoadResult
		cached *pipeline.CachedLoadResult
	)
	if flagNoCache {
		result, err = pipeline.Load(path, progressFn)
	} else {
		cached, err = pipeline.LoadWithCache(path, st, progressFn)
		if cached != nil {
			result = &cached.LoadResult
		}
	}
	if err != nil {
		return err
	}

	if result.TotalFiles == 0 {
		if cached != nil {
			if err := cached.Commit(st); err != nil {
				return err
			}
		}
		fmt.Printf("  No statement files found in %s\n", path)
		return nil
	}

	s, err := readState(st)
	if err != nil {
		return err
	}
	added, skipped, err := s.Import(result.Transactions)
	if err != nil {
		return err
	}
	if err := writeState(st, s); err != nil {
		return err
	}
	if cached != nil {
		if err := cached.Commit(st); err != nil {
			return err
		}
	}

	logger.Get().Info("statements imported",
		zap.String("path", path),
		zap.Int("files", result.TotalFiles),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("parse_errors", result.ParseErrors),
	)
	if cached != nil && cached.Pruned > 0 {
		logger.Get().Info("forgot vanished statement files", zap.Int("files", cached.Pruned))
	}

	if cached != nil && cached.Reparsed == 0 {
		progress("\r  All %d files unchanged since last import    \n", cached.Skipped)
	} else {
		progress("\r  Parsed %s files across %d platforms    \n",
			formatNumber(int64(result.ParsedFiles)), result.PlatformCount)
	}

	fmt.Printf("  Added %s transactions", formatNumber(int64(added)))
	if skipped > 0 {
		fmt.Printf(", %s already in the ledger", formatNumber(int64(skipped)))
	}
	fmt.Println()
	if result.ParseErrors > 0 || result.FileErrors > 0 {
		fmt.Println(cli.Warn(fmt.Sprintf("  %d unreadable rows, %d unreadable files", result.ParseErrors, result.FileErrors)))
	}
	fmt.Printf("  Wallet balance: %s\n", cli.FormatCurrency(s.Profile.CurrentBalance))
	return nil
}
