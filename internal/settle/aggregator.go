// Package settle computes the fixed-expense settlement aggregates:
// paid/pending partition at a reference date, per-partner split, and the
// category and per-month rollups used by the reports.
package settle

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brun04maral/agora-ledger/internal/model"
)

var two = decimal.NewFromInt(2)

// Aggregate partitions the eligible set into paid and pending at the
// reference date and sums both sides. The split across the two partners
// is half the paid total, rounded to the cent. Record order follows the
// input (source row order); nothing is re-sorted or dropped.
func Aggregate(eligible []model.ExpenseRecord, ref time.Time) model.Settlement {
	s := model.Settlement{
		Reference:    ref,
		PaidTotal:    decimal.Zero,
		PendingTotal: decimal.Zero,
	}

	for _, rec := range eligible {
		if rec.Paid(ref) {
			s.Paid = append(s.Paid, rec)
			s.PaidTotal = s.PaidTotal.Add(rec.Amount)
		} else {
			s.Pending = append(s.Pending, rec)
			s.PendingTotal = s.PendingTotal.Add(rec.Amount)
		}
	}

	s.PaidCount = len(s.Paid)
	s.PendingCount = len(s.Pending)
	s.PerPartnerShare = s.PaidTotal.Div(two).Round(2)

	return s
}

// AggregateCategories rolls up all records (not just the eligible set) by
// bucket, in report order, so excluded and unmapped records stay visible.
func AggregateCategories(records []model.ExpenseRecord) []model.CategoryStats {
	byCat := make(map[model.Category]*model.CategoryStats)
	for _, c := range model.Categories {
		byCat[c] = &model.CategoryStats{Category: c, Total: decimal.Zero}
	}

	for _, rec := range records {
		cs := byCat[rec.Category]
		cs.Count++
		cs.Total = cs.Total.Add(rec.Amount)
	}

	out := make([]model.CategoryStats, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, *byCat[c])
	}
	return out
}

// AggregateMonths buckets eligible records by due month, oldest first,
// with a trailing bucket for unknown due dates.
func AggregateMonths(eligible []model.ExpenseRecord) []model.MonthStats {
	byMonth := make(map[time.Time]*model.MonthStats)
	unknown := model.MonthStats{Unknown: true, Total: decimal.Zero}

	for _, rec := range eligible {
		if !rec.Due.Known() {
			unknown.Count++
			unknown.Total = unknown.Total.Add(rec.Amount)
			continue
		}
		d := rec.Due.Time()
		key := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		ms, ok := byMonth[key]
		if !ok {
			ms = &model.MonthStats{Month: key, Total: decimal.Zero}
			byMonth[key] = ms
		}
		ms.Count++
		ms.Total = ms.Total.Add(rec.Amount)
	}

	months := make([]model.MonthStats, 0, len(byMonth)+1)
	for _, ms := range byMonth {
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.Before(months[j].Month)
	})
	if unknown.Count > 0 {
		months = append(months, unknown)
	}

	return months
}

// FilterEligible returns the records in the fixed-monthly settlement set,
// preserving order. eligibleFn is the classifier's Eligible method.
func FilterEligible(records []model.ExpenseRecord, eligibleFn func(model.ExpenseRecord) bool) []model.ExpenseRecord {
	var out []model.ExpenseRecord
	for _, rec := range records {
		if eligibleFn(rec) {
			out = append(out, rec)
		}
	}
	return out
}
