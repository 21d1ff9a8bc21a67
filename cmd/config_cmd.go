package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(config.ConfigPath())
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the config file to defaults",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return fmt.Errorf("resetting config: %w", err)
		}
		fmt.Printf("  Defaults written to %s\n", config.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Ledger]")
	fmt.Printf("    Workbook:      %s\n", cfg.Ledger.Path)
	if cfg.Ledger.Sheet != "" {
		fmt.Printf("    Sheet:         %s\n", cfg.Ledger.Sheet)
	} else {
		fmt.Println("    Sheet:         first sheet")
	}
	fmt.Printf("    Header marker: %q\n", cfg.Ledger.HeaderMarker)
	fmt.Println()

	fmt.Println("  [Database]")
	fmt.Printf("    Path: %s\n", config.DatabasePath(cfg))
	fmt.Println()

	fmt.Println("  [Partners]")
	fmt.Printf("    A: %s\n", cfg.Partners.A)
	fmt.Printf("    B: %s\n", cfg.Partners.B)
	fmt.Println()

	fmt.Println("  [Classify]")
	fmt.Printf("    Monthly markers:    %s\n", strings.Join(cfg.Classify.MonthlyMarkers, ", "))
	fmt.Printf("    Exclusion keywords: %s\n", strings.Join(cfg.Classify.ExclusionKeywords, ", "))
	fmt.Printf("    Equipment keywords: %s\n", strings.Join(cfg.Classify.EquipmentKeywords, ", "))
	fmt.Printf("    Project keywords:   %s\n", strings.Join(cfg.Classify.ProjectKeywords, ", "))
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Listing limit: %d\n", cfg.Report.ListingLimit)
	fmt.Println()

	fmt.Println("  Run `agora-ledger setup` to reconfigure.")
	return nil
}
