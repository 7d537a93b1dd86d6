package workweek

import (
	"testing"
	"time"
)

func TestPeriodSpansSevenDays(t *testing.T) {
	p := Period(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)) // a Monday

	if p.WeekNumber != 11 || p.Year != 2025 {
		t.Fatalf("got week %d of %d, want week 11 of 2025", p.WeekNumber, p.Year)
	}
	if !p.End.Equal(p.Start.AddDate(0, 0, 6)) {
		t.Fatalf("end %v is not start + 6 days", p.End)
	}
	if p.Label != "10/03/2025 - 16/03/2025" {
		t.Fatalf("label = %q", p.Label)
	}
}

func TestPeriodISOWeekAtYearBoundary(t *testing.T) {
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
	p := Period(time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC))
	if p.WeekNumber != 1 || p.Year != 2025 {
		t.Fatalf("got week %d of %d, want week 1 of 2025", p.WeekNumber, p.Year)
	}

	// 2020-12-28 opens ISO week 53 of a long year.
	p = Period(time.Date(2020, time.December, 28, 0, 0, 0, 0, time.UTC))
	if p.WeekNumber != 53 || p.Year != 2020 {
		t.Fatalf("got week %d of %d, want week 53 of 2020", p.WeekNumber, p.Year)
	}
}

func TestPeriodNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	p := Period(time.Date(2025, time.March, 10, 23, 45, 0, 0, loc))

	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !p.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", p.Start, want)
	}
}
