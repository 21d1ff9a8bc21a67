package model

import (
	"testing"
	"time"
)

func TestDueDateFromParts(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    string
	}{
		{"valid", 2025, 10, 1, "2025-10-01"},
		{"month 13", 2025, 13, 1, "unknown"},
		{"feb 31", 2025, 2, 31, "unknown"},
		{"missing year", 0, 10, 1, "unknown"},
		{"missing month", 2025, 0, 1, "unknown"},
		{"missing day", 2025, 10, 0, "unknown"},
		{"leap day", 2024, 2, 29, "2024-02-29"},
		{"non-leap feb 29", 2025, 2, 29, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueDateFromParts(tt.y, tt.m, tt.d)
			if got.String() != tt.want {
				t.Errorf("DueDateFromParts(%d, %d, %d) = %q, want %q",
					tt.y, tt.m, tt.d, got.String(), tt.want)
			}
		})
	}
}

func TestDueDateFromCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"iso date", "2025-10-29", "2025-10-29"},
		{"datetime truncated", "2025-10-29 13:45:00", "2025-10-29"},
		{"pt layout", "29-10-2025", "2025-10-29"},
		{"slash layout", "29/10/2025", "2025-10-29"},
		{"padded", "  2025-10-29  ", "2025-10-29"},
		{"nbsp padded", " 2025-10-29 ", "2025-10-29"},
		{"empty", "", "unknown"},
		{"garbage", "soon", "unknown"},
		{"torn", "2025-10", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueDateFromCell(tt.cell)
			if got.String() != tt.want {
				t.Errorf("DueDateFromCell(%q) = %q, want %q", tt.cell, got.String(), tt.want)
			}
		})
	}
}

func TestDueDateOnOrBefore(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	if !NewDueDate(2025, 10, 29).OnOrBefore(ref) {
		t.Error("due date equal to reference must count as due (inclusive boundary)")
	}
	if !NewDueDate(2025, 10, 1).OnOrBefore(ref) {
		t.Error("earlier due date must count as due")
	}
	if NewDueDate(2025, 11, 5).OnOrBefore(ref) {
		t.Error("later due date must not count as due")
	}
	if (DueDate{}).OnOrBefore(ref) {
		t.Error("unknown due date must never count as due")
	}
}

func TestExpenseRecordPaid(t *testing.T) {
	ref := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)
	payday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  ExpenseRecord
		want bool
	}{
		{"payment date wins over future due",
			ExpenseRecord{Due: NewDueDate(2026, 1, 1), PaymentDate: &payday}, true},
		{"payment date wins over unknown due",
			ExpenseRecord{PaymentDate: &payday}, true},
		{"due before reference",
			ExpenseRecord{Due: NewDueDate(2025, 10, 1)}, true},
		{"due on reference",
			ExpenseRecord{Due: NewDueDate(2025, 10, 29)}, true},
		{"due after reference",
			ExpenseRecord{Due: NewDueDate(2025, 11, 5)}, false},
		{"unknown due, no payment",
			ExpenseRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Paid(ref); got != tt.want {
				t.Errorf("Paid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories {
		if got := CategoryFromString(c.String()); got != c {
			t.Errorf("CategoryFromString(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if got := CategoryFromString("no-such-bucket"); got != CategoryOther {
		t.Errorf("unknown identifier should map to other, got %v", got)
	}
}
