package util

import "time"

// MonthNames holds the abbreviated Spanish month names used in trend charts
var MonthNames = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// MonthName returns the abbreviated Spanish name for month (1-12)
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// StartOfMonth returns the first instant of the given calendar month in UTC
func StartOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfISOWeek returns the first instant of the Monday-based week containing t
func StartOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentMonthYear returns the calendar month and year of t
func CurrentMonthYear(t time.Time) (month, year int) {
	return int(t.Month()), t.Year()
}
