package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/config"
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
	// Load existing config or defaults so re-running edits in place.
	cfg, _ := config.Load()

	ledgerPath := cfg.Ledger.Path
	sheet := cfg.Ledger.Sheet
	dbPath := cfg.Database.Path
	partnerA := cfg.Partners.A
	partnerB := cfg.Partners.B
	save := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ledger workbook").
				Description("Path to the Agora expense spreadsheet (.xlsx)").
				Value(&ledgerPath),
			huh.NewInput().
				Title("Sheet name").
				Description("Leave empty to use the first sheet").
				Value(&sheet),
			huh.NewInput().
				Title("Database").
				Description("Path to the sqlite database (AGORA_DB overrides)").
				Value(&dbPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Partner A").
				Value(&partnerA).
				Validate(nonEmpty),
			huh.NewInput().
				Title("Partner B").
				Value(&partnerB).
				Validate(nonEmpty),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Save to %s?", config.ConfigPath())).
				Value(&save),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}
	if !save {
		fmt.Println("  Nothing saved.")
		return nil
	}

	cfg.Ledger.Path = ledgerPath
	cfg.Ledger.Sheet = sheet
	cfg.Database.Path = dbPath
	cfg.Partners.A = partnerA
	cfg.Partners.B = partnerB

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `agora-ledger setup` anytime to reconfigure.")

	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}
