package workweek

import (
	"math"
	"strconv"
	"strings"
)

// parseClock converts a HH:MM string to decimal hours. Empty or malformed
// input reports ok = false, which the calculators treat as "not worked".
func parseClock(s string) (float64, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}

	return float64(hour) + float64(minute)/60, true
}

// IntervalHours returns the raw difference between two clock times in
// decimal hours. If either bound is absent the interval counts as 0.
// The result is not clamped: an end earlier than the start yields a
// negative value, which DayTotal floors at the per-day boundary.
func IntervalHours(start, end string) float64 {
	startHours, ok := parseClock(start)
	if !ok {
		return 0
	}
	endHours, ok := parseClock(end)
	if !ok {
		return 0
	}

	return endHours - startHours
}

// NightIntervalHours is IntervalHours with a midnight rollover: a night
// shift ending at a clock time before its start ends the following day,
// so 24 hours are added before subtracting. 22:00 to 06:00 is 8 hours.
func NightIntervalHours(start, end string) float64 {
	startHours, ok := parseClock(start)
	if !ok {
		return 0
	}
	endHours, ok := parseClock(end)
	if !ok {
		return 0
	}

	if endHours < startHours {
		endHours += 24
	}

	return endHours - startHours
}

// DayTotal is the day's net worked hours: day interval plus night interval
// minus the pause, floored at 0 and rounded to 2 decimal places. Only the
// night interval rolls over midnight; a day shift entered as 22:00-06:00
// contributes a negative raw interval and the day clamps to 0.
func DayTotal(d DayHours) float64 {
	total := IntervalHours(d.DayStart, d.DayEnd)
	total += NightIntervalHours(d.NightStart, d.NightEnd)
	total -= d.Pause

	if total < 0 {
		total = 0
	}

	return round2(total)
}

// WeekTotal sums the seven clamped day totals, rounded to 2 decimal places.
func WeekTotal(w WeekHours) float64 {
	total := 0.0
	for _, day := range w.Days() {
		total += DayTotal(day)
	}

	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
