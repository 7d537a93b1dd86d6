package workweek

import (
	"fmt"
	"time"
)

// WeekPeriod describes the calendar span of a submitted week. WeekNumber and
// Year follow ISO-8601 (weeks start Monday, week 1 holds the year's first
// Thursday). The values are denormalized onto the timesheet record for
// display and never used as an identity.
type WeekPeriod struct {
	WeekNumber int       `json:"weekNumber"`
	Year       int       `json:"year"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Label      string    `json:"label"`
}

// Period resolves the ISO week and the 7-day span for a week-start date.
// The computation runs in UTC to avoid timezone drift around midnight.
func Period(weekStart time.Time) WeekPeriod {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	year, week := start.ISOWeek()

	return WeekPeriod{
		WeekNumber: week,
		Year:       year,
		Start:      start,
		End:        end,
		Label:      fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006")),
	}
}
