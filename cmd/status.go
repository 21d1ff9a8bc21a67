package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/logger"
	"github.com/brun04maral/agora-ledger/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Database schema and migration status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := config.DatabasePath(cfg)
	st, err := store.OpenExisting(dbPath, logger.New(true))
	if err != nil {
		return err
	}
	defer st.Close()

	states, err := st.MigrationStates()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DATABASE STATUS"))
	fmt.Printf("\n  Database: %s\n\n", dbPath)

	rows := make([][]string, 0, len(states))
	pending := 0
	for _, r := range states {
		state := "applied"
		if r.State == store.StatePending {
			state = "pending"
			pending++
		}
		rows = append(rows, []string{
			fmt.Sprintf("%03d", r.Migration.Seq),
			r.Migration.Name,
			state,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Migrations",
		Headers: []string{"Seq", "Name", "State"},
		Rows:    rows,
		Align:   []cli.Alignment{cli.AlignRight, cli.AlignLeft, cli.AlignLeft},
	}))

	if pending > 0 {
		fmt.Printf("\n  %d migration(s) pending. Run `agora-ledger migrate`.\n", pending)
	}

	counts, err := st.TableCounts()
	if err != nil {
		return err
	}
	if len(counts) > 0 {
		fmt.Println()
		countRows := make([][]string, 0, len(counts))
		for _, t := range []string{"clients", "suppliers", "projects", "expenses", "settlements"} {
			if n, ok := counts[t]; ok {
				countRows = append(countRows, []string{t, cli.FormatNumber(int64(n))})
			}
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Tables",
			Headers: []string{"Table", "Rows"},
			Rows:    countRows,
		}))
	}
	fmt.Println()

	return nil
}
