package workweek

import "testing"

func TestIntervalHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"morning shift", "08:00", "12:00", 4},
		{"half hours", "08:30", "17:15", 8.75},
		{"missing start", "", "12:00", 0},
		{"missing end", "08:00", "", 0},
		{"malformed", "8h00", "12:00", 0},
		{"out of range hour", "25:00", "26:00", 0},
		{"end before start stays negative", "22:00", "06:00", -16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntervalHours(tt.start, tt.end); got != tt.want {
				t.Fatalf("IntervalHours(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestNightIntervalHoursRollsOverMidnight(t *testing.T) {
	if got := NightIntervalHours("22:00", "06:00"); got != 8 {
		t.Fatalf("NightIntervalHours(22:00, 06:00) = %v, want 8", got)
	}
	if got := NightIntervalHours("20:00", "23:00"); got != 3 {
		t.Fatalf("NightIntervalHours(20:00, 23:00) = %v, want 3", got)
	}
	if got := NightIntervalHours("", "06:00"); got != 0 {
		t.Fatalf("NightIntervalHours with missing start = %v, want 0", got)
	}
}

func TestDayTotal(t *testing.T) {
	tests := []struct {
		name string
		day  DayHours
		want float64
	}{
		{
			name: "day shift with pause",
			day:  DayHours{DayStart: "08:00", DayEnd: "12:00", Pause: 0.5},
			want: 3.5,
		},
		{
			name: "day and night shifts",
			day:  DayHours{DayStart: "08:00", DayEnd: "16:00", NightStart: "22:00", NightEnd: "02:00", Pause: 1},
			want: 11,
		},
		{
			name: "empty day",
			day:  DayHours{},
			want: 0,
		},
		{
			name: "pause only clamps to zero",
			day:  DayHours{Pause: 1},
			want: 0,
		},
		{
			name: "inverted day shift clamps to zero",
			day:  DayHours{DayStart: "22:00", DayEnd: "06:00"},
			want: 0,
		},
		{
			name: "rounding to two decimals",
			day:  DayHours{DayStart: "08:00", DayEnd: "08:20"},
			want: 0.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayTotal(tt.day); got != tt.want {
				t.Fatalf("DayTotal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekTotal(t *testing.T) {
	week := WeekHours{
		Monday:    DayHours{DayStart: "08:00", DayEnd: "16:00", Pause: 0.5},
		Tuesday:   DayHours{DayStart: "08:00", DayEnd: "16:00", Pause: 0.5},
		Wednesday: DayHours{NightStart: "22:00", NightEnd: "06:00"},
		Thursday:  DayHours{DayStart: "22:00", DayEnd: "06:00"}, // clamps to 0
		Friday:    DayHours{Pause: 2},                           // clamps to 0
	}

	if got := WeekTotal(week); got != 23 {
		t.Fatalf("WeekTotal = %v, want 23", got)
	}
}

func TestWeekTotalEmptyWeek(t *testing.T) {
	if got := WeekTotal(WeekHours{}); got != 0 {
		t.Fatalf("WeekTotal(empty) = %v, want 0", got)
	}
}
