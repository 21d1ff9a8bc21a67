package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List eligible fixed-monthly expenses with status",
	RunE:  runExpenses,
}

var flagExpensesAll bool

func init() {
	expensesCmd.Flags().BoolVarP(&flagExpensesAll, "all", "a", false, "List every record, not just the eligible set")
	rootCmd.AddCommand(expensesCmd)
}

func runExpenses(_ *cobra.Command, _ []string) error {
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

	records := result.Eligible
	title := "ELIGIBLE EXPENSES"
	if flagExpensesAll {
		records = result.Records
		title = "ALL EXPENSES"
	}
	if len(records) == 0 {
		fmt.Println("\n  No expenses found.")
		return nil
	}

	s := settle.Aggregate(result.Eligible, ref)

	shown := records
	limit := cfg.Report.ListingLimit
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  as of %s", title, cli.FormatDate(ref))))
	fmt.Println()

	rows := make([][]string, 0, len(shown))
	for _, rec := range shown {
		status := "pending"
		if rec.Paid(ref) {
			status = "paid"
		}
		rows = append(rows, []string{
			rec.Number,
			cli.Truncate(rec.Description, 26),
			rec.Category.String(),
			rec.Due.String(),
			status,
			cli.FormatAmount(rec.Amount),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Description", "Category", "Due", "Status", "Amount"},
		Rows:    rows,
		Align: []cli.Alignment{
			cli.AlignLeft, cli.AlignLeft, cli.AlignLeft,
			cli.AlignRight, cli.AlignLeft, cli.AlignRight,
		},
	}))
	if len(shown) < len(records) {
		fmt.Print(cli.Mutedf("  ... %d more (raise --limit to see them)\n", len(records)-len(shown)))
	}

	fmt.Printf("\n  Paid %s   Pending %s   Per partner %s\n\n",
		cli.FormatAmount(s.PaidTotal),
		cli.FormatAmount(s.PendingTotal),
		cli.FormatAmount(s.PerPartnerShare))

	return nil
}
