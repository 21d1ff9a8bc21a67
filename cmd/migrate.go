package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: "Apply the numbered schema migrations in ascending order. Each unit is\n" +
		"idempotent: applied state is probed from the live schema, and an\n" +
		"already-exists conflict counts as a no-op. Any other failure rolls the\n" +
		"unit back and aborts with a non-zero exit.",
	RunE: runMigrate,
}

var flagMigrateDown int

func init() {
	migrateCmd.Flags().IntVar(&flagMigrateDown, "down", 0, "Roll back the unit with this sequence number")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if flagMigrateDown > 0 {
		res, err := st.MigrateDown(flagMigrateDown)
		if err != nil {
			return err
		}
		fmt.Printf("  %03d_%s: %s\n", res.Migration.Seq, res.Migration.Name, downLabel(res.State))
		return nil
	}

	results, err := st.MigrateUp()
	printMigrateResults(results)
	if err != nil {
		return err
	}

	applied := 0
	for _, r := range results {
		if r.State == store.StateApplied {
			applied++
		}
	}
	if applied == 0 {
		fmt.Println("  Schema is up to date.")
	} else {
		fmt.Printf("  Applied %d migration(s).\n", applied)
	}

	return nil
}

func printMigrateResults(results []store.UnitResult) {
	for _, r := range results {
		var tag string
		switch r.State {
		case store.StateApplied:
			tag = "[OK]  "
		case store.StateAlreadyApplied:
			tag = "[SKIP]"
		case store.StateFailed:
			tag = "[FAIL]"
		default:
			tag = "[....]"
		}
		fmt.Printf("  %s %03d_%s\n", tag, r.Migration.Seq, r.Migration.Name)
	}
}

func downLabel(s store.UnitState) string {
	if s == store.StateAlreadyApplied {
		return "not applied, nothing to roll back"
	}
	return "rolled back"
}
