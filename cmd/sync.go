package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write classified ledger rows into the database",
	Long: "Upsert every classified ledger record into the expenses table in one\n" +
		"transaction, and record the computed settlement snapshot. Pending\n" +
		"migrations are applied first so the schema is always current.",
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ref, err := asOfDate()
	if err != nil {
		return err
	}

	result, err := loadLedger(cfg)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		fmt.Println("\n  Nothing to sync.")
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.MigrateUp(); err != nil {
		return err
	}

	partnerFor := func(c model.Category) string {
		switch c {
		case model.CategoryPersonalA:
			return strings.ToLower(cfg.Partners.A)
		case model.CategoryPersonalB:
			return strings.ToLower(cfg.Partners.B)
		default:
			return ""
		}
	}

	written, err := st.UpsertExpenses(result.Records, partnerFor)
	if err != nil {
		return err
	}

	s := settle.Aggregate(result.Eligible, ref)
	if err := st.SaveSettlement(s); err != nil {
		return err
	}

	fmt.Printf("  Synced %d expense(s) and one settlement snapshot.\n", written)
	return nil
}
