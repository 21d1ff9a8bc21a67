// Package model defines the domain types shared across the agora-ledger
// pipeline: expense records read from the ledger workbook and the
// settlement aggregates computed from them.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the accounting bucket an expense belongs to.
type Category int

const (
	// CategoryOther covers type labels that map to no known bucket.
	// Records land here visibly instead of being dropped.
	CategoryOther Category = iota
	CategoryFixedMonthly
	CategoryPersonalA
	CategoryPersonalB
	CategoryEquipment
	CategoryProjectLinked
)

// String returns the stable identifier used in reports and in the database.
func (c Category) String() string {
	switch c {
	case CategoryFixedMonthly:
		return "fixed_monthly"
	case CategoryPersonalA:
		return "personal_a"
	case CategoryPersonalB:
		return "personal_b"
	case CategoryEquipment:
		return "equipment"
	case CategoryProjectLinked:
		return "project_linked"
	default:
		return "other"
	}
}

// Categories lists all buckets in report order.
var Categories = []Category{
	CategoryFixedMonthly,
	CategoryPersonalA,
	CategoryPersonalB,
	CategoryEquipment,
	CategoryProjectLinked,
	CategoryOther,
}

// CategoryFromString maps a stored identifier back to its Category.
// Unrecognized values map to CategoryOther.
func CategoryFromString(s string) Category {
	for _, c := range Categories {
		if c.String() == s {
			return c
		}
	}
	return CategoryOther
}

// DueDate is a calendar date that may be unknown. The zero value is the
// unknown marker. Construction failures (a torn date cell, month 13,
// February 31) yield unknown rather than an error so a bad row never
// aborts a report.
type DueDate struct {
	t     time.Time
	known bool
}

// dueCellLayouts are the date formats observed in ledger cells, most
// specific first. Datetime values are truncated to the date.
var dueCellLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"1/2/06 15:04",
	"01-02-06",
}

// DueDateFromCell parses a combined date (or datetime) cell. An empty or
// unparseable cell yields the unknown marker.
func DueDateFromCell(cell string) DueDate {
	cell = trimCell(cell)
	if cell == "" {
		return DueDate{}
	}
	for _, layout := range dueCellLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return NewDueDate(t.Year(), int(t.Month()), t.Day())
		}
	}
	return DueDate{}
}

// DueDateFromParts builds a date from separate year/month/day fields.
// Any missing (zero) or out-of-range component yields the unknown marker.
func DueDateFromParts(year, month, day int) DueDate {
	if year == 0 || month == 0 || day == 0 {
		return DueDate{}
	}
	return NewDueDate(year, month, day)
}

// NewDueDate validates components via a time.Date round trip: time.Date
// normalizes overflow (month 13 becomes January next year), so a changed
// component means the input was not a real calendar date.
func NewDueDate(year, month, day int) DueDate {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DueDate{}
	}
	return DueDate{t: t, known: true}
}

// Known reports whether the date could be resolved.
func (d DueDate) Known() bool { return d.known }

// Time returns the resolved date. Only meaningful when Known is true.
func (d DueDate) Time() time.Time { return d.t }

// OnOrBefore reports whether the date is known and falls on or before ref.
// The boundary is inclusive: an expense due exactly on the reference date
// counts as due.
func (d DueDate) OnOrBefore(ref time.Time) bool {
	return d.known && !d.t.After(ref)
}

// String formats the date for reports, or "unknown".
func (d DueDate) String() string {
	if !d.known {
		return "unknown"
	}
	return d.t.Format("2006-01-02")
}

// trimCell strips surrounding whitespace, folding the non-breaking
// spaces spreadsheet exports sometimes carry.
func trimCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
}

// ExpenseRecord is one ledger row with named, typed fields. Amounts
// default to zero and dates to unknown when the source cell is absent or
// malformed.
type ExpenseRecord struct {
	Number      string // opaque identifier, unique within the source sheet
	Description string
	TypeLabel   string // raw type cell, kept for exclusion matching and reports
	Category    Category
	Periodicity string // raw periodicity cell ("Mensal", "monthly", ...)
	Amount      decimal.Decimal
	Due         DueDate
	PaymentDate *time.Time
	Row         int // 1-based source row, preserves listing order
}

// Paid reports whether the expense counts as settled at the reference
// date. A set payment date always wins, even over a future or unknown due
// date; otherwise the expense is paid when its due date is known and on
// or before ref.
func (e ExpenseRecord) Paid(ref time.Time) bool {
	if e.PaymentDate != nil {
		return true
	}
	return e.Due.OnOrBefore(ref)
}
