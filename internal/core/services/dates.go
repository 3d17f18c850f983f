package services

import "time"

// dayKeyLayout is the calendar-day key format used throughout the system.
const dayKeyLayout = "2006-01-02"

// LocalDayKey derives the year-month-day key of a timestamp in the given
// location. Due dates stored as UTC midnight would shift a day when formatted
// in an offset timezone, so comparisons always go through this helper rather
// than UTC formatting.
func LocalDayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dayKeyLayout)
}
