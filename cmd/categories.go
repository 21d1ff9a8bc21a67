package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Per-category expense counts and totals",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := loadLedger(cfg)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		fmt.Println("\n  No expenses found.")
		return nil
	}

	stats := settle.AggregateCategories(result.Records)

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES BY CATEGORY"))
	fmt.Println()

	maxTotal := 0.0
	for _, cs := range stats {
		if t, _ := cs.Total.Float64(); t > maxTotal {
			maxTotal = t
		}
	}

	rows := make([][]string, 0, len(stats)+2)
	totalCount := 0
	for _, cs := range stats {
		if cs.Count == 0 {
			continue
		}
		totalCount += cs.Count
		total, _ := cs.Total.Float64()
		rows = append(rows, []string{
			categoryLabel(cs.Category, cfg),
			cli.FormatNumber(int64(cs.Count)),
			cli.FormatAmount(cs.Total),
			cli.RenderHorizontalBar(total, maxTotal, 20),
		})
	}
	rows = append(rows, cli.Separator)
	rows = append(rows, []string{"TOTAL", cli.FormatNumber(int64(totalCount)), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Count", "Total", ""},
		Rows:    rows,
		Align: []cli.Alignment{
			cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignLeft,
		},
	}))

	if result.Excluded > 0 {
		fmt.Printf("\n  %d monthly records are excluded from settlement by a payroll keyword.\n", result.Excluded)
	}
	fmt.Println()

	return nil
}

// categoryLabel renders a bucket name with the partner name attached to
// the personal buckets.
func categoryLabel(c model.Category, cfg config.Config) string {
	switch c {
	case model.CategoryFixedMonthly:
		return "Fixed monthly"
	case model.CategoryPersonalA:
		return fmt.Sprintf("Personal (%s)", cfg.Partners.A)
	case model.CategoryPersonalB:
		return fmt.Sprintf("Personal (%s)", cfg.Partners.B)
	case model.CategoryEquipment:
		return "Equipment"
	case model.CategoryProjectLinked:
		return "Project-linked"
	default:
		return "Other"
	}
}
