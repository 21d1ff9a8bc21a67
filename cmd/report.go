package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fixed-expense settlement report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
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
	if len(result.Eligible) == 0 {
		fmt.Println("\n  No fixed-monthly expenses found in the ledger.")
		return nil
	}

	s := settle.Aggregate(result.Eligible, ref)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SETTLEMENT  as of %s", cli.FormatDate(ref))))
	fmt.Println()

	rows := [][]string{
		{"Eligible expenses", cli.FormatNumber(int64(len(result.Eligible)))},
		{"Excluded (payroll)", cli.FormatNumber(int64(result.Excluded))},
		cli.Separator,
		{fmt.Sprintf("Paid (%d)", s.PaidCount), cli.FormatAmount(s.PaidTotal)},
		{fmt.Sprintf("Pending (%d)", s.PendingCount), cli.FormatAmount(s.PendingTotal)},
		{"Total", cli.FormatAmount(s.EligibleTotal())},
		cli.Separator,
		{fmt.Sprintf("Share %s", cfg.Partners.A), cli.FormatAmount(s.PerPartnerShare)},
		{fmt.Sprintf("Share %s", cfg.Partners.B), cli.FormatAmount(s.PerPartnerShare)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	limit := cfg.Report.ListingLimit
	fmt.Println()
	fmt.Print(renderRecordListing("Paid", s.Paid, limit))
	fmt.Print(renderRecordListing("Pending", s.Pending, limit))

	return nil
}

// renderRecordListing renders a bounded listing of contributing records
// in source row order, for inspection against the database.
func renderRecordListing(title string, records []model.ExpenseRecord, limit int) string {
	if len(records) == 0 {
		return ""
	}

	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	rows := make([][]string, 0, len(shown))
	for _, rec := range shown {
		due := rec.Due.String()
		pay := ""
		if rec.PaymentDate != nil {
			pay = cli.FormatDate(*rec.PaymentDate)
		}
		rows = append(rows, []string{
			rec.Number,
			cli.Truncate(rec.Description, 28),
			due,
			pay,
			cli.FormatAmount(rec.Amount),
		})
	}

	out := cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s (%d)", title, len(records)),
		Headers: []string{"#", "Description", "Due", "Paid on", "Amount"},
		Rows:    rows,
		Align: []cli.Alignment{
			cli.AlignLeft, cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignRight,
		},
	})
	if len(shown) < len(records) {
		out += cli.Mutedf("  ... %d more (raise --limit to see them)\n", len(records)-len(shown))
	}
	return out + "\n"
}
