package ledger

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brun04maral/agora-ledger/internal/model"
)

// parseRow converts one sheet row into an ExpenseRecord. Returns ok=false
// for rows without an identifier (spacers, subtotal lines). errs counts
// cells that had a value but could not be coerced; those fields default
// to zero or unknown instead of failing the row.
func parseRow(row []string, rowNum int, cols columnIndex) (model.ExpenseRecord, int, bool) {
	number := trim(cell(row, cols.number))
	if number == "" {
		return model.ExpenseRecord{}, 0, false
	}

	rec := model.ExpenseRecord{
		Number:      number,
		Description: trim(cell(row, cols.description)),
		TypeLabel:   trim(cell(row, cols.typ)),
		Periodicity: trim(cell(row, cols.periodicity)),
		Row:         rowNum,
	}

	errs := 0

	amount, ok := parseAmount(cell(row, cols.amount))
	if !ok {
		errs++
	}
	rec.Amount = amount

	rec.Due, ok = parseDue(row, cols)
	if !ok {
		errs++
	}

	if pay := trim(cell(row, cols.paymentDate)); pay != "" {
		if d := model.DueDateFromCell(pay); d.Known() {
			t := d.Time()
			rec.PaymentDate = &t
		} else {
			errs++
		}
	}

	return rec, errs, true
}

// parseDue resolves the due date from whichever form the sheet carries:
// a combined date cell, or split year/month/day cells. Partial or invalid
// components yield the unknown marker. ok=false only when a present cell
// failed to parse, never for genuinely empty cells.
func parseDue(row []string, cols columnIndex) (model.DueDate, bool) {
	if cols.dueDate >= 0 {
		raw := trim(cell(row, cols.dueDate))
		if raw == "" {
			return model.DueDate{}, true
		}
		d := model.DueDateFromCell(raw)
		return d, d.Known()
	}

	y, yOK := parseIntCell(cell(row, cols.dueYear))
	m, mOK := parseIntCell(cell(row, cols.dueMonth))
	d, dOK := parseIntCell(cell(row, cols.dueDay))
	if !yOK || !mOK || !dOK {
		return model.DueDate{}, false
	}

	due := model.DueDateFromParts(y, m, d)
	if y != 0 && m != 0 && d != 0 && !due.Known() {
		// All three present but not a real calendar date (e.g. month 13).
		return model.DueDate{}, false
	}
	return due, true
}

// cell returns row[idx] or "" when the column is unmapped or the row is
// short (trailing empty cells are trimmed by the workbook reader).
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func trim(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
}

// parseAmount coerces a currency cell to a decimal. Both "1.234,56" and
// "1,234.56" groupings occur in source sheets; the last separator wins as
// the decimal mark. An empty cell is a valid zero; a non-numeric cell is
// a recovered error (zero, ok=false).
func parseAmount(s string) (decimal.Decimal, bool) {
	s = trim(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, true
	}

	dot := strings.LastIndexByte(s, '.')
	comma := strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseIntCell coerces an integer cell. Empty is a valid zero (absent
// component); malformed is a recovered error.
func parseIntCell(s string) (int, bool) {
	s = trim(s)
	if s == "" {
		return 0, true
	}
	// Sheets sometimes format integers as "2025.0".
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
