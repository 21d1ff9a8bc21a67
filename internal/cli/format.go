// Package cli provides formatting and rendering utilities for terminal
// report output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a currency value with two decimals and thousands
// separators. e.g. 1234.5 -> "1,234.50 €"
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "." + frac + " €"
	if neg {
		return "-" + out
	}
	return out
}

// FormatDelta formats a signed difference between two amounts.
func FormatDelta(a, b decimal.Decimal) string {
	delta := a.Sub(b)
	if delta.Sign() >= 0 {
		return "+" + FormatAmount(delta)
	}
	return FormatAmount(delta)
}

// FormatDate formats a calendar date for reports.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatNumber adds comma separators to an integer.
// e.g. 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

// Truncate shortens a string to max runes, appending an ellipsis.
func Truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
