package calendar

import (
	"sort"
	"time"
)

// maxStreakDays bounds the backward walk so malformed data cannot spin forever.
const maxStreakDays = 1000

// Streak counts consecutive recorded days ending today. A missing entry for
// today does not break the run: counting then starts from yesterday.
func Streak(dates []string, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	recorded := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		recorded[d] = struct{}{}
	}

	day := StartOfDay(now)
	if _, ok := recorded[day.Format(DayLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for i := 0; i < maxStreakDays; i++ {
		if _, ok := recorded[day.Format(DayLayout)]; !ok {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// LongestStreak returns the longest run of consecutive days found anywhere in
// dates. Unparseable values are ignored.
func LongestStreak(dates []string) int {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			continue
		}
		t, err := time.ParseInLocation(DayLayout, d, time.UTC)
		if err != nil {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
