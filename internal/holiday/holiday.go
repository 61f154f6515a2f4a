// Package holiday computes US federal holidays for timeline rendering.
// Holidays are derived, not stored: the fixed-date ones plus the
// nth-weekday observances.
package holiday

import (
	"fmt"
	"time"
)

// Holiday is a single public holiday.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
	Type string `json:"type"`
}

const typeFederal = "federal"

// ForYear returns the federal holidays of the given year in calendar
// order.
func ForYear(year int) []Holiday {
	return []Holiday{
		fixed(year, time.January, 1, "New Year's Day"),
		nthWeekday(year, time.January, time.Monday, 3, "Martin Luther King Jr. Day"),
		nthWeekday(year, time.February, time.Monday, 3, "Presidents' Day"),
		lastWeekday(year, time.May, time.Monday, "Memorial Day"),
		fixed(year, time.June, 19, "Juneteenth"),
		fixed(year, time.July, 4, "Independence Day"),
		nthWeekday(year, time.September, time.Monday, 1, "Labor Day"),
		nthWeekday(year, time.October, time.Monday, 2, "Columbus Day"),
		fixed(year, time.November, 11, "Veterans Day"),
		nthWeekday(year, time.November, time.Thursday, 4, "Thanksgiving Day"),
		fixed(year, time.December, 25, "Christmas Day"),
	}
}

// IsHoliday reports whether date (YYYY-MM-DD) falls on a federal
// holiday.
func IsHoliday(date string) (Holiday, bool) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Holiday{}, false
	}
	for _, h := range ForYear(parsed.Year()) {
		if h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}

func fixed(year int, month time.Month, day int, name string) Holiday {
	return Holiday{
		Date: isoDate(year, month, day),
		Name: name,
		Type: typeFederal,
	}
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int, name string) Holiday {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	return Holiday{
		Date: isoDate(year, month, day),
		Name: name,
		Type: typeFederal,
	}
}

func lastWeekday(year int, month time.Month, weekday time.Weekday, name string) Holiday {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return Holiday{
		Date: isoDate(year, month, last.Day()-offset),
		Name: name,
		Type: typeFederal,
	}
}

func isoDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
