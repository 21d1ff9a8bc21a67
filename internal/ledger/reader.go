// Package ledger reads the Agora bookkeeping workbook and turns its rows
// into typed expense records. The header row is located by scanning for a
// marker token because its position varies between sheets, and the column
// layout comes from configuration so format drift stays out of the
// business logic.
package ledger

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/brun04maral/agora-ledger/internal/classify"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/model"
)

// Result holds the parsed sheet and its data-quality counters. Cell
// coercion failures never abort the read; they are zero-filled and
// counted here so reports can surface them.
type Result struct {
	Records   []model.ExpenseRecord
	Sheet     string
	HeaderRow int // 1-based row of the detected header
	RowErrors int // cells recovered as zero/unknown
	Skipped   int // rows with no identifier cell
}

// Load opens the workbook at path and parses the configured sheet.
func Load(path string, cfg config.LedgerConfig) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("ledger not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	headerIdx, found := findHeader(rows, cfg.HeaderMarker)
	if !found {
		return nil, fmt.Errorf("sheet %q: no header row starting with %q", sheet, cfg.HeaderMarker)
	}

	cols := mapColumns(rows[headerIdx], cfg.Columns)
	if cols.amount < 0 {
		return nil, fmt.Errorf("sheet %q: amount column %q not found in header", sheet, cfg.Columns.Amount)
	}

	result := &Result{
		Sheet:     sheet,
		HeaderRow: headerIdx + 1,
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		rec, errs, ok := parseRow(rows[i], i+1, cols)
		if !ok {
			result.Skipped++
			continue
		}
		result.RowErrors += errs
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// findHeader scans for the first row whose leading non-empty cell starts
// with the marker token. Returns the 0-based index.
func findHeader(rows [][]string, marker string) (int, bool) {
	if marker == "" {
		marker = "#"
	}
	for i, row := range rows {
		for _, c := range row {
			c = trim(c)
			if c == "" {
				continue
			}
			if len(c) >= len(marker) && c[:len(marker)] == marker {
				return i, true
			}
			break // first non-empty cell is not the marker
		}
	}
	return 0, false
}

// columnIndex holds the resolved 0-based column for each mapped field,
// or -1 when the header does not carry it.
type columnIndex struct {
	number      int
	description int
	typ         int
	periodicity int
	amount      int
	dueDate     int
	dueYear     int
	dueMonth    int
	dueDay      int
	paymentDate int
}

// mapColumns matches configured header names against the header row,
// case- and accent-insensitively.
func mapColumns(header []string, m config.ColumnMapping) columnIndex {
	find := func(name string) int {
		if name == "" {
			return -1
		}
		want := classify.Fold(trim(name))
		for i, h := range header {
			if classify.Fold(trim(h)) == want {
				return i
			}
		}
		return -1
	}

	return columnIndex{
		number:      find(m.Number),
		description: find(m.Description),
		typ:         find(m.Type),
		periodicity: find(m.Periodicity),
		amount:      find(m.Amount),
		dueDate:     find(m.DueDate),
		dueYear:     find(m.DueYear),
		dueMonth:    find(m.DueMonth),
		dueDay:      find(m.DueDay),
		paymentDate: find(m.PaymentDate),
	}
}
