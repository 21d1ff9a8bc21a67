// Package cmd implements the agora-ledger CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/logger"
	"github.com/brun04maral/agora-ledger/internal/pipeline"
	"github.com/brun04maral/agora-ledger/internal/store"
)

var (
	flagLedger string
	flagSheet  string
	flagDB     string
	flagAsOf   string
	flagLimit  int
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "agora-ledger",
	Short: "Agora bookkeeping reconciliation CLI",
	Long: "Read the Agora expense ledger, compute the fixed-monthly partner settlement,\n" +
		"maintain the database schema, and reconcile the two against each other.",
	RunE: runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "f", "", "Ledger workbook path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagSheet, "sheet", "s", "", "Sheet name (default from config, else first sheet)")
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", "", "Database path (default from AGORA_DB or config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().IntVarP(&flagLimit, "limit", "l", 0, "Max records per listing (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress and info output")
}

// loadConfig reads the config file; flag values override it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	if flagLimit > 0 {
		cfg.Report.ListingLimit = flagLimit
	}
	return cfg, nil
}

// loadLedger is the shared ledger loading path used by the report
// commands. It prints the data-quality counters unless --quiet.
func loadLedger(cfg config.Config) (*pipeline.LoadResult, error) {
	result, err := pipeline.Load(cfg, flagLedger, flagSheet)
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Read %d records from sheet %q (header at row %d)\n",
			len(result.Records), result.Sheet, result.HeaderRow)
		if result.RowErrors > 0 {
			fmt.Fprintf(os.Stderr, "  %d cells could not be parsed and were zero-filled\n", result.RowErrors)
		}
		if result.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "  %d rows without an identifier were skipped\n", result.Skipped)
		}
	}

	return result, nil
}

// openStore opens the configured database, creating it if needed.
func openStore(cfg config.Config) (*store.Store, error) {
	return store.Open(config.DatabasePath(cfg), logger.New(flagQuiet))
}

// asOfDate resolves the reference date flag, defaulting to today.
func asOfDate() (time.Time, error) {
	if flagAsOf == "" {
		// Due dates are parsed as UTC; take today's date in UTC too so
		// the boundary does not shift near midnight in other zones.
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", flagAsOf)
	}
	return t, nil
}
