// Package analytics derives the calendar heatmap, trend charts and summary
// statistics from a set of journal entries.
package analytics

import (
	"time"

	"github.com/aebalz/vibetrack/internal/calendar"
	"github.com/aebalz/vibetrack/internal/model"
)

// Heatmap is a Monday-first 7-row grid of a whole year, flattened.
// Cells starts with Padding nil cells so Jan 1 lands on its weekday row,
// followed by one cell per day of the year.
type Heatmap struct {
	Year    int                   `json:"year"`
	Padding int                   `json:"padding"`
	Cells   []*model.JournalEntry `json:"cells"`
}

// BinYear lays out entries on the heatmap grid of year. Entries outside the
// year are ignored; when two entries share a date the later one in the slice
// wins.
func BinYear(year int, entries []model.JournalEntry) Heatmap {
	byDay := indexByDay(entries)

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	padding := calendar.MondayOffset(jan1.Weekday())

	cells := make([]*model.JournalEntry, padding, padding+366)
	for d := jan1; d.Year() == year; d = d.AddDate(0, 0, 1) {
		var cell *model.JournalEntry
		if e, ok := byDay[d.Format(calendar.DayLayout)]; ok {
			cell = &e
		}
		cells = append(cells, cell)
	}

	return Heatmap{Year: year, Padding: padding, Cells: cells}
}

// Days returns the number of calendar-day cells (365 or 366).
func (h Heatmap) Days() int {
	return len(h.Cells) - h.Padding
}

// Weeks splits the cells into columns of seven, Monday first. The last column
// may be short.
func (h Heatmap) Weeks() [][]*model.JournalEntry {
	var weeks [][]*model.JournalEntry
	for i := 0; i < len(h.Cells); i += 7 {
		end := i + 7
		if end > len(h.Cells) {
			end = len(h.Cells)
		}
		weeks = append(weeks, h.Cells[i:end])
	}
	return weeks
}

// DayAt returns the calendar day of cell i, or "" for a padding cell.
func (h Heatmap) DayAt(i int) string {
	if i < h.Padding || i >= len(h.Cells) {
		return ""
	}
	jan1 := time.Date(h.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.AddDate(0, 0, i-h.Padding).Format(calendar.DayLayout)
}

func indexByDay(entries []model.JournalEntry) map[string]model.JournalEntry {
	byDay := make(map[string]model.JournalEntry, len(entries))
	for _, e := range entries {
		byDay[string(e.Date)] = e
	}
	return byDay
}
