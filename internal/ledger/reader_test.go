package ledger

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/brun04maral/agora-ledger/internal/config"
)

// writeWorkbook builds a minimal ledger workbook with a preamble above
// the header row, the way real sheets carry a title block.
func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLedgerConfig() config.LedgerConfig {
	cfg := config.DefaultConfig().Ledger
	cfg.Columns.DueYear = ""
	cfg.Columns.DueMonth = ""
	cfg.Columns.DueDay = ""
	return cfg
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Agora Despesas 2025"},
		{},
		{"#", "Descrição", "Tipo", "Periodicidade", "Valor s/IVA", "Data", "Pagamento"},
		{"1", "Renda", "Fixa", "Mensal", "500,00", "2025-10-05", ""},
		{"2", "Internet", "Fixa", "Mensal", "n/a", "2025-10-29", ""},
		{"", "Subtotal", "", "", "500,00"},
		{"3", "Café", "Diversos", "", "12,30", "", ""},
	})

	res, err := Load(path, testLedgerConfig())
	if err != nil {
		t.Fatal(err)
	}

	if res.HeaderRow != 3 {
		t.Errorf("HeaderRow = %d, want 3", res.HeaderRow)
	}
	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (subtotal row)", res.Skipped)
	}
	if res.RowErrors != 1 {
		t.Errorf("RowErrors = %d, want 1 (malformed amount)", res.RowErrors)
	}

	// The malformed amount recovers as zero; the row survives.
	if !res.Records[1].Amount.IsZero() {
		t.Errorf("Records[1].Amount = %s, want 0", res.Records[1].Amount)
	}
	if got := res.Records[0].Amount.String(); got != "500" {
		t.Errorf("Records[0].Amount = %s, want 500", got)
	}
	if got := res.Records[0].Due.String(); got != "2025-10-05" {
		t.Errorf("Records[0].Due = %s, want 2025-10-05", got)
	}
	if res.Records[2].Due.Known() {
		t.Error("empty due cell must stay unknown")
	}
}

func TestLoad_HeaderMatchingFoldsAccents(t *testing.T) {
	// Headers typed without accents must still map.
	path := writeWorkbook(t, [][]string{
		{"#", "Descricao", "Tipo", "Periodicidade", "Valor s/IVA", "Data"},
		{"1", "Renda", "Fixa", "Mensal", "500", "2025-10-05"},
	})

	res, err := Load(path, testLedgerConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(res.Records))
	}
	if res.Records[0].Description != "Renda" {
		t.Errorf("Description = %q, want Renda", res.Records[0].Description)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"), testLedgerConfig())
	if err == nil {
		t.Fatal("want error for missing workbook")
	}
}

func TestLoad_NoHeader(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"just", "data"},
		{"no", "header"},
	})
	_, err := Load(path, testLedgerConfig())
	if err == nil {
		t.Fatal("want error when no header row matches the marker")
	}
}

func TestLoad_MissingAmountColumn(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"#", "Descrição", "Tipo"},
		{"1", "Renda", "Fixa"},
	})
	_, err := Load(path, testLedgerConfig())
	if err == nil {
		t.Fatal("want error when the amount column is absent")
	}
}

func TestFindHeader(t *testing.T) {
	rows := [][]string{
		{"Título"},
		{"", "", ""},
		{"", "#", "Descrição"}, // leading empty cells are skipped
		{"1", "Renda"},
	}
	idx, ok := findHeader(rows, "#")
	if !ok || idx != 2 {
		t.Errorf("findHeader = (%d, %v), want (2, true)", idx, ok)
	}

	_, ok = findHeader([][]string{{"abc"}, {"def"}}, "#")
	if ok {
		t.Error("findHeader matched a row without the marker")
	}
}
