package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is the paid/pending partition of the eligible fixed-monthly
// set at a reference date, with the even two-partner split of the paid
// total. Record slices keep source row order for discrepancy hunting.
type Settlement struct {
	Reference time.Time

	PaidTotal       decimal.Decimal
	PendingTotal    decimal.Decimal
	PerPartnerShare decimal.Decimal

	PaidCount    int
	PendingCount int

	Paid    []ExpenseRecord
	Pending []ExpenseRecord
}

// EligibleTotal is the conserved sum: paid plus pending.
func (s Settlement) EligibleTotal() decimal.Decimal {
	return s.PaidTotal.Add(s.PendingTotal)
}

// CategoryStats is the per-bucket rollup shown by the categories report.
type CategoryStats struct {
	Category Category
	Count    int
	Total    decimal.Decimal
}

// MonthStats buckets eligible expenses by due month. Unknown due dates
// get their own bucket so no record disappears from the view.
type MonthStats struct {
	Month   time.Time // first of the month; zero for the unknown bucket
	Unknown bool
	Count   int
	Total   decimal.Decimal
}

// CategoryTotal is a count/sum pair as stored in the database, used by
// the reconcile report as the independent side of the comparison.
type CategoryTotal struct {
	Category Category
	Count    int
	Total    decimal.Decimal
}
