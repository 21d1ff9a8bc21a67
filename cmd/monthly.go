package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Eligible expense totals by due month",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
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

	months := settle.AggregateMonths(result.Eligible)

	fmt.Println()
	fmt.Println(cli.RenderTitle("FIXED EXPENSES BY DUE MONTH"))
	fmt.Println()

	rows := make([][]string, 0, len(months))
	var spark []float64
	for _, ms := range months {
		label := "unknown"
		if !ms.Unknown {
			label = ms.Month.Format("2006-01")
			total, _ := ms.Total.Float64()
			spark = append(spark, total)
		}
		rows = append(rows, []string{
			label,
			cli.FormatNumber(int64(ms.Count)),
			cli.FormatAmount(ms.Total),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Count", "Total"},
		Rows:    rows,
	}))

	if len(spark) > 1 {
		fmt.Printf("\n  Trend  %s\n", cli.RenderSparkline(spark))
	}
	fmt.Println()

	return nil
}
