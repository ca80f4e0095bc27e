// Package calendar turns timestamps into local calendar days and counts
// consecutive-day streaks over them.
package calendar

import (
	"strconv"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day format used everywhere in the app.
const DayLayout = "2006-01-02"

// Layouts with an explicit zone offset. The parsed instant is moved into the
// local zone before the day is taken.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
}

// Layouts without a zone. They are read as local wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Today returns the calendar day of now in now's location.
func Today(now time.Time) string {
	return now.Format(DayLayout)
}

// NormalizeDate converts a timestamp-like string into YYYY-MM-DD using the
// calendar day in now's location. Input that cannot be parsed yields today.
func NormalizeDate(raw string, now time.Time) string {
	t, ok := Parse(raw, now.Location())
	if !ok {
		return Today(now)
	}
	return t.In(now.Location()).Format(DayLayout)
}

// DayKey strips any time component at the first 'T' or space and then
// normalizes what is left. It is used when a new entry is saved.
func DayKey(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "T "); i >= 0 {
		raw = raw[:i]
	}
	return NormalizeDate(raw, now)
}

// Parse reads raw as a calendar day or timestamp in loc. The second result is
// false when no supported format matches.
func Parse(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if len(s) == len(DayLayout) {
		if t, err := time.ParseInLocation(DayLayout, s, loc); err == nil {
			return t, true
		}
	}

	if isDigits(s) && len(s) >= 10 {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).In(loc), true
	}

	// Postgres renders timestamps with a space separator.
	s = strings.Replace(s, " ", "T", 1)

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MustDay parses a YYYY-MM-DD day in loc, returning the zero time on failure.
func MustDay(day string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// DaysInMonth reports the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayOffset is the number of cells before weekday in a Monday-first week.
func MondayOffset(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
