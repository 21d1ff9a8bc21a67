package settle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brun04maral/agora-ledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedMonthly(num string, amount string, due model.DueDate) model.ExpenseRecord {
	return model.ExpenseRecord{
		Number:      num,
		TypeLabel:   "Fixa",
		Category:    model.CategoryFixedMonthly,
		Periodicity: "Mensal",
		Amount:      dec(amount),
		Due:         due,
	}
}

// Three fixed expenses against an October reference: one due before the
// reference, one due on it, one due after. The first two count as paid,
// the third stays pending, and each partner owes half of the paid total.
func TestAggregate_ReferenceDateScenario(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	eligible := []model.ExpenseRecord{
		fixedMonthly("1", "500.00", model.NewDueDate(2025, 10, 5)),
		fixedMonthly("2", "300.00", model.NewDueDate(2025, 10, 29)),
		fixedMonthly("3", "200.00", model.NewDueDate(2025, 11, 5)),
	}

	s := Aggregate(eligible, ref)

	if got, want := s.PaidTotal.StringFixed(2), "800.00"; got != want {
		t.Errorf("PaidTotal = %s, want %s", got, want)
	}
	if got, want := s.PendingTotal.StringFixed(2), "200.00"; got != want {
		t.Errorf("PendingTotal = %s, want %s", got, want)
	}
	if got, want := s.PerPartnerShare.StringFixed(2), "400.00"; got != want {
		t.Errorf("PerPartnerShare = %s, want %s", got, want)
	}
	if s.PaidCount != 2 || s.PendingCount != 1 {
		t.Errorf("counts = %d paid / %d pending, want 2 / 1", s.PaidCount, s.PendingCount)
	}
}

func TestAggregate_PaymentDateDominates(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Due after the reference, but already paid: the recorded payment wins.
	rec := fixedMonthly("1", "150.00", model.NewDueDate(2025, 12, 1))
	rec.PaymentDate = &paidAt

	s := Aggregate([]model.ExpenseRecord{rec}, ref)
	if s.PaidCount != 1 {
		t.Fatalf("PaidCount = %d, want 1", s.PaidCount)
	}
	if got := s.PaidTotal.StringFixed(2); got != "150.00" {
		t.Errorf("PaidTotal = %s, want 150.00", got)
	}
}

func TestAggregate_UnknownDueIsPending(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	// Month 13 normalizes away in time.Date; the due date stays unknown
	// and an unknown due date without a payment is pending.
	rec := fixedMonthly("1", "99.00", model.NewDueDate(2025, 13, 1))

	s := Aggregate([]model.ExpenseRecord{rec}, ref)
	if s.PendingCount != 1 {
		t.Fatalf("PendingCount = %d, want 1", s.PendingCount)
	}
	if got := s.PendingTotal.StringFixed(2); got != "99.00" {
		t.Errorf("PendingTotal = %s, want 99.00", got)
	}
}

// Every eligible record lands in exactly one partition and the two totals
// always add back up to the eligible total.
func TestAggregate_Conservation(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	eligible := []model.ExpenseRecord{
		fixedMonthly("1", "123.45", model.NewDueDate(2025, 9, 1)),
		fixedMonthly("2", "0.00", model.DueDate{}),
		fixedMonthly("3", "67.89", model.NewDueDate(2026, 1, 1)),
		fixedMonthly("4", "1000.01", model.NewDueDate(2025, 10, 29)),
	}

	var want decimal.Decimal
	for _, rec := range eligible {
		want = want.Add(rec.Amount)
	}

	s := Aggregate(eligible, ref)
	if got := s.PaidTotal.Add(s.PendingTotal); !got.Equal(want) {
		t.Errorf("PaidTotal + PendingTotal = %s, want %s", got, want)
	}
	if s.PaidCount+s.PendingCount != len(eligible) {
		t.Errorf("partition lost records: %d + %d != %d", s.PaidCount, s.PendingCount, len(eligible))
	}
}

func TestAggregate_PreservesSourceOrder(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	eligible := []model.ExpenseRecord{
		fixedMonthly("7", "10.00", model.NewDueDate(2025, 10, 1)),
		fixedMonthly("3", "20.00", model.NewDueDate(2025, 10, 2)),
		fixedMonthly("9", "30.00", model.NewDueDate(2025, 10, 3)),
	}

	s := Aggregate(eligible, ref)
	wantOrder := []string{"7", "3", "9"}
	if len(s.Paid) != len(wantOrder) {
		t.Fatalf("len(Paid) = %d, want %d", len(s.Paid), len(wantOrder))
	}
	for i, num := range wantOrder {
		if s.Paid[i].Number != num {
			t.Errorf("Paid[%d].Number = %q, want %q", i, s.Paid[i].Number, num)
		}
	}
}

func TestAggregateMonths(t *testing.T) {
	eligible := []model.ExpenseRecord{
		fixedMonthly("1", "100.00", model.NewDueDate(2025, 11, 5)),
		fixedMonthly("2", "50.00", model.NewDueDate(2025, 10, 1)),
		fixedMonthly("3", "25.00", model.NewDueDate(2025, 10, 20)),
		fixedMonthly("4", "5.00", model.DueDate{}),
	}

	months := AggregateMonths(eligible)
	if len(months) != 3 {
		t.Fatalf("len(months) = %d, want 3", len(months))
	}
	if months[0].Month.Month() != time.October || months[0].Count != 2 {
		t.Errorf("months[0] = %+v, want October with 2 records", months[0])
	}
	if got := months[0].Total.StringFixed(2); got != "75.00" {
		t.Errorf("October total = %s, want 75.00", got)
	}
	if months[1].Month.Month() != time.November {
		t.Errorf("months[1].Month = %v, want November", months[1].Month)
	}
	last := months[len(months)-1]
	if !last.Unknown || last.Count != 1 {
		t.Errorf("last bucket = %+v, want unknown with 1 record", last)
	}
}

func TestAggregateCategories(t *testing.T) {
	records := []model.ExpenseRecord{
		{Category: model.CategoryFixedMonthly, Amount: dec("10.00")},
		{Category: model.CategoryFixedMonthly, Amount: dec("20.00")},
		{Category: model.CategoryOther, Amount: dec("5.00")},
	}

	stats := AggregateCategories(records)
	if len(stats) != len(model.Categories) {
		t.Fatalf("len(stats) = %d, want %d", len(stats), len(model.Categories))
	}
	for _, cs := range stats {
		switch cs.Category {
		case model.CategoryFixedMonthly:
			if cs.Count != 2 || cs.Total.StringFixed(2) != "30.00" {
				t.Errorf("fixed_monthly = %+v, want 2 records totalling 30.00", cs)
			}
		case model.CategoryOther:
			if cs.Count != 1 {
				t.Errorf("other.Count = %d, want 1", cs.Count)
			}
		default:
			if cs.Count != 0 {
				t.Errorf("%v.Count = %d, want 0", cs.Category, cs.Count)
			}
		}
	}
}

func TestFilterEligible(t *testing.T) {
	records := []model.ExpenseRecord{
		{Number: "1", Category: model.CategoryFixedMonthly},
		{Number: "2", Category: model.CategoryOther},
		{Number: "3", Category: model.CategoryFixedMonthly},
	}
	out := FilterEligible(records, func(r model.ExpenseRecord) bool {
		return r.Category == model.CategoryFixedMonthly
	})
	if len(out) != 2 || out[0].Number != "1" || out[1].Number != "3" {
		t.Errorf("FilterEligible = %+v, want records 1 and 3", out)
	}
}
