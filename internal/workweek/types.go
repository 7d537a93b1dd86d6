package workweek

// DayHours is one calendar day's reported intervals. Clock times use the
// HH:MM form; an empty string means the bound was not filled in.
type DayHours struct {
	Date       string  `json:"date"`
	DayStart   string  `json:"dayStart"`
	DayEnd     string  `json:"dayEnd"`
	NightStart string  `json:"nightStart"`
	NightEnd   string  `json:"nightEnd"`
	Pause      float64 `json:"pause"`
}

// WeekHours is the seven-day grid a worker fills in, Monday first.
type WeekHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Days returns the days in fixed Monday to Sunday order.
func (w WeekHours) Days() [7]DayHours {
	return [7]DayHours{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
}
