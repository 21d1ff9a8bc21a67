package cmd

import (
	"testing"
	"time"
)

func TestAsOfDate(t *testing.T) {
	t.Run("explicit flag", func(t *testing.T) {
		flagAsOf = "2025-10-29"
		defer func() { flagAsOf = "" }()

		got, err := asOfDate()
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("asOfDate = %v, want %v", got, want)
		}
	})

	t.Run("default is today in UTC at midnight", func(t *testing.T) {
		flagAsOf = ""

		got, err := asOfDate()
		if err != nil {
			t.Fatal(err)
		}
		if got.Location() != time.UTC {
			t.Errorf("location = %v, want UTC", got.Location())
		}
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Errorf("time of day = %v, want midnight", got)
		}
		utcNow := time.Now().UTC()
		if got.Year() != utcNow.Year() || got.YearDay() != utcNow.YearDay() {
			t.Errorf("date = %v, want UTC today %v", got, utcNow)
		}
	})

	t.Run("invalid flag", func(t *testing.T) {
		flagAsOf = "29/10/2025"
		defer func() { flagAsOf = "" }()

		if _, err := asOfDate(); err == nil {
			t.Fatal("want error for non-ISO date")
		}
	})
}
