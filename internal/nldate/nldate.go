// Package nldate resolves natural-language date expressions ("15
// March", "tomorrow", "next friday") into a concrete day-of-month and
// month, anchored to a caller-supplied reference instant. Resolution
// never reads a live clock, so it is deterministic and testable.
package nldate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a resolved (day-of-month, month) pair.
type Date struct {
	Day   int
	Month time.Month
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

const monthNames = "january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec"

var (
	dayMonthRe = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNames + `)`)
	monthDayRe = regexp.MustCompile(`(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?`)
	keywordRe  = regexp.MustCompile(`today|tomorrow|sunday|monday|tuesday|wednesday|thursday|friday|saturday`)
)

// MonthByName maps a full month name or 3-letter abbreviation to its
// month. ok is false for anything unrecognized.
func MonthByName(name string) (time.Month, bool) {
	m, ok := monthsByName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Resolve converts a lower-cased phrase into a concrete date relative
// to now. Order: an explicit day+month pattern (either order, ordinal
// suffix tolerated) wins; then "today"/"tomorrow"/a weekday name, with
// a leading "next " adding a further seven days; otherwise ok is false
// and the caller falls back to today.
func Resolve(text string, now time.Time) (Date, bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := MonthByName(m[2])
		return Date{Day: day, Month: month}, true
	}
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[2])
		month, _ := MonthByName(m[1])
		return Date{Day: day, Month: month}, true
	}

	keyword := keywordRe.FindString(text)
	if keyword == "" {
		return Date{}, false
	}

	switch keyword {
	case "today":
		return Date{Day: now.Day(), Month: now.Month()}, true
	case "tomorrow":
		t := now.AddDate(0, 0, 1)
		return Date{Day: t.Day(), Month: t.Month()}, true
	}

	// Weekday name: next future occurrence, never today. Saying
	// "monday" on a Monday means next Monday.
	target := weekdaysByName[keyword]
	offset := (int(target) + 7 - int(now.Weekday())) % 7
	if offset == 0 {
		offset = 7
	}
	if strings.Contains(text, "next ") {
		offset += 7
	}
	t := now.AddDate(0, 0, offset)
	return Date{Day: t.Day(), Month: t.Month()}, true
}

// ResolveDayMonth builds a date from an already-extracted day number
// and month name ("15" + "mar"). An unrecognized month name falls back
// to the month of now rather than failing; the engine logs the
// fallback but event creation proceeds.
func ResolveDayMonth(day int, monthName string, now time.Time) (Date, bool) {
	month, ok := MonthByName(monthName)
	if !ok {
		month = now.Month()
	}
	return Date{Day: day, Month: month}, ok
}
