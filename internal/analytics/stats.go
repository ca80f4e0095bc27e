package analytics

import (
	"math"
	"time"

	"github.com/aebalz/vibetrack/internal/calendar"
	"github.com/aebalz/vibetrack/internal/model"
)

// Stats is the dashboard header: streaks, average energy and whether today
// has been recorded.
type Stats struct {
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	AverageEnergy  float64 `json:"averageEnergy"`
	TotalEntries   int     `json:"totalEntries"`
	CheckedInToday bool    `json:"checkedInToday"`
}

// Summarize computes Stats over all entries as seen at now.
func Summarize(entries []model.JournalEntry, now time.Time) Stats {
	dates := model.Dates(entries)
	today := calendar.Today(now)

	var sum int
	checkedIn := false
	for _, e := range entries {
		sum += int(e.Energy)
		if string(e.Date) == today {
			checkedIn = true
		}
	}

	var avg float64
	if len(entries) > 0 {
		avg = math.Round(float64(sum)/float64(len(entries))*10) / 10
	}

	return Stats{
		CurrentStreak:  calendar.Streak(dates, now),
		LongestStreak:  calendar.LongestStreak(dates),
		AverageEnergy:  avg,
		TotalEntries:   len(entries),
		CheckedInToday: checkedIn,
	}
}
