package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/logger"
	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/settle"
	"github.com/brun04maral/agora-ledger/internal/store"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare ledger totals against database totals",
	Long: "Compute per-category totals from the spreadsheet and compare them with\n" +
		"the totals stored in the database. Discrepancies are reported as\n" +
		"warnings; neither source is treated as ground truth.",
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

// centTolerance is the largest absolute difference still considered a
// rounding artifact rather than a discrepancy.
var centTolerance = decimal.New(1, -2)

func runReconcile(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := loadLedger(cfg)
	if err != nil {
		return err
	}
	ledgerStats := settle.AggregateCategories(result.Records)

	st, err := store.OpenExisting(config.DatabasePath(cfg), logger.New(true))
	if err != nil {
		return err
	}
	defer st.Close()

	dbTotals, err := st.CategoryTotals()
	if err != nil {
		return err
	}
	dbByCat := make(map[model.Category]model.CategoryTotal, len(dbTotals))
	for _, ct := range dbTotals {
		dbByCat[ct.Category] = ct
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEDGER vs DATABASE"))
	fmt.Println()

	rows := make([][]string, 0, len(ledgerStats))
	var warnings []string
	for _, ls := range ledgerStats {
		db := dbByCat[ls.Category]
		if ls.Count == 0 && db.Count == 0 {
			continue
		}

		delta := ls.Total.Sub(db.Total)
		rows = append(rows, []string{
			categoryLabel(ls.Category, cfg),
			fmt.Sprintf("%d / %s", ls.Count, cli.FormatAmount(ls.Total)),
			fmt.Sprintf("%d / %s", db.Count, cli.FormatAmount(db.Total)),
			cli.FormatDelta(ls.Total, db.Total),
		})

		if delta.Abs().GreaterThan(centTolerance) {
			warnings = append(warnings, fmt.Sprintf(
				"%s differs by %s (ledger %s, database %s)",
				categoryLabel(ls.Category, cfg),
				cli.FormatAmount(delta.Abs()),
				cli.FormatAmount(ls.Total),
				cli.FormatAmount(db.Total)))
		} else if ls.Count != db.Count {
			warnings = append(warnings, fmt.Sprintf(
				"%s totals match but counts differ (ledger %d, database %d)",
				categoryLabel(ls.Category, cfg), ls.Count, db.Count))
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Ledger", "Database", "Δ"},
		Rows:    rows,
		Align: []cli.Alignment{
			cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignRight,
		},
	}))

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("  Sources agree within one cent.")
	} else {
		for _, w := range warnings {
			fmt.Println(cli.RenderWarn(w))
		}
		fmt.Println("\n  Investigate discrepancies by hand; neither source is authoritative.")
	}
	fmt.Println()

	return nil
}
