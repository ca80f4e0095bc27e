package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/vibetrack/internal/model"
)

func entry(day string, energy model.EnergyLevel) model.JournalEntry {
	return model.JournalEntry{ID: "id-" + day, Date: model.Day(day), Energy: energy, Content: "note " + day}
}

func TestBinYear_Padding(t *testing.T) {
	tests := []struct {
		year    int
		padding int
		days    int
	}{
		{2025, 2, 365}, // Wednesday
		{2024, 0, 366}, // Monday, leap year
		{2023, 6, 365}, // Sunday
		{2026, 3, 365}, // Thursday
	}
	for _, tc := range tests {
		h := BinYear(tc.year, nil)
		assert.Equal(t, tc.padding, h.Padding, "year %d", tc.year)
		assert.Equal(t, tc.days, h.Days(), "year %d", tc.year)
		assert.Len(t, h.Cells, tc.padding+tc.days)
		for i := 0; i < tc.padding; i++ {
			assert.Nil(t, h.Cells[i])
		}
	}
}

func TestBinYear_PlacesEntries(t *testing.T) {
	entries := []model.JournalEntry{
		entry("2025-01-01", model.EnergyHigh),
		entry("2025-12-31", model.EnergyLow),
		entry("2024-12-31", model.EnergyPeak),
		entry("2026-01-01", model.EnergyPeak),
	}
	h := BinYear(2025, entries)

	require.NotNil(t, h.Cells[2])
	assert.Equal(t, model.Day("2025-01-01"), h.Cells[2].Date)
	last := h.Cells[len(h.Cells)-1]
	require.NotNil(t, last)
	assert.Equal(t, model.Day("2025-12-31"), last.Date)

	filled := 0
	for _, c := range h.Cells {
		if c != nil {
			filled++
		}
	}
	assert.Equal(t, 2, filled)

	assert.Equal(t, "", h.DayAt(0))
	assert.Equal(t, "2025-01-01", h.DayAt(2))
	assert.Equal(t, "2025-12-31", h.DayAt(len(h.Cells)-1))
}

func TestHeatmap_Weeks(t *testing.T) {
	h := BinYear(2025, nil)
	weeks := h.Weeks()
	// 2 padding + 365 days = 367 cells = 52 full weeks + 3.
	require.Len(t, weeks, 53)
	for _, w := range weeks[:52] {
		assert.Len(t, w, 7)
	}
	assert.Len(t, weeks[52], 3)
}

func TestActiveAverage(t *testing.T) {
	assert.Equal(t, 4.0, ActiveAverage([]float64{3, 0, 0, 5}))
	assert.Equal(t, 0.0, ActiveAverage([]float64{0, 0}))
	assert.Equal(t, 0.0, ActiveAverage(nil))
	assert.InDelta(t, 2.5, ActiveAverage([]float64{2, 3}), 1e-9)
}

func TestAggregate_Week(t *testing.T) {
	// Sunday 2024-05-05 belongs to the week of Monday 2024-04-29.
	ref := time.Date(2024, 5, 5, 15, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		entry("2024-04-29", model.EnergyLow),
		entry("2024-05-01", model.EnergyPeak),
		entry("2024-05-06", model.EnergyHigh),
	}

	tr, err := Aggregate(Week, ref, entries)
	require.NoError(t, err)
	require.Len(t, tr.Buckets, 7)

	assert.Equal(t, "T2", tr.Buckets[0].Label)
	assert.Equal(t, "2024-04-29", tr.Buckets[0].Date)
	assert.Equal(t, 2.0, tr.Buckets[0].Value)
	assert.Equal(t, model.EnergyLow.Color(), tr.Buckets[0].Color)
	assert.Equal(t, 0.0, tr.Buckets[1].Value)
	assert.Equal(t, model.EmptyColor, tr.Buckets[1].Color)
	assert.Equal(t, 5.0, tr.Buckets[2].Value)
	assert.Equal(t, "CN", tr.Buckets[6].Label)
	assert.Equal(t, "2024-05-05", tr.Buckets[6].Date)

	assert.InDelta(t, 3.5, tr.Average, 1e-9)
	assert.Equal(t, "29 Th4 - 5 Th5", tr.RangeLabel)
	assert.Equal(t, "2024-05-05", tr.Reference)
}

func TestAggregate_Month(t *testing.T) {
	ref := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		entry("2024-02-01", model.EnergyNeutral),
		entry("2024-02-29", model.EnergyPeak),
		entry("2024-03-01", model.EnergyExtremeLow),
	}

	tr, err := Aggregate(Month, ref, entries)
	require.NoError(t, err)
	require.Len(t, tr.Buckets, 29)
	assert.Equal(t, "1", tr.Buckets[0].Label)
	assert.Equal(t, 3.0, tr.Buckets[0].Value)
	assert.Equal(t, "29", tr.Buckets[28].Label)
	assert.Equal(t, 5.0, tr.Buckets[28].Value)
	assert.InDelta(t, 4.0, tr.Average, 1e-9)
	assert.Equal(t, "Tháng 2, 2024", tr.RangeLabel)
}

func TestAggregate_Year(t *testing.T) {
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		entry("2024-01-03", model.EnergyLow),
		entry("2024-01-04", model.EnergyHigh),
		entry("2024-04-10", model.EnergyPeak),
		entry("2023-04-10", model.EnergyExtremeLow),
	}

	tr, err := Aggregate(Year, ref, entries)
	require.NoError(t, err)
	require.Len(t, tr.Buckets, 12)

	assert.Equal(t, 3.0, tr.Buckets[0].Value)
	assert.Equal(t, BrandColor, tr.Buckets[0].Color)
	assert.Equal(t, 0.0, tr.Buckets[1].Value)
	assert.Equal(t, model.EmptyColor, tr.Buckets[1].Color)
	assert.Equal(t, 5.0, tr.Buckets[3].Value)
	assert.Equal(t, "2024-04", tr.Buckets[3].Date)
	assert.Equal(t, "T12", tr.Buckets[11].Label)

	// Months without entries are excluded from the average.
	assert.InDelta(t, 4.0, tr.Average, 1e-9)
	assert.Equal(t, "Năm 2024", tr.RangeLabel)
}

func TestAggregate_UnknownTimeframe(t *testing.T) {
	_, err := Aggregate(Timeframe("decade"), time.Now(), nil)
	assert.True(t, errors.Is(err, ErrUnknownTimeframe))
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("")
	require.NoError(t, err)
	assert.Equal(t, Week, tf)

	tf, err = ParseTimeframe(" Month ")
	require.NoError(t, err)
	assert.Equal(t, Month, tf)

	_, err = ParseTimeframe("day")
	assert.ErrorIs(t, err, ErrUnknownTimeframe)
}

func TestShift(t *testing.T) {
	ref := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 7, 12, 0, 0, 0, time.UTC), Shift(Week, ref, 1))
	assert.Equal(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), Shift(Week, ref, -2))
	// Month arithmetic normalizes like the calendar: Jan 31 + 1 month = Mar 2 in 2024.
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), Shift(Month, ref, 1))
	assert.Equal(t, time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), Shift(Month, ref, -1))
	assert.Equal(t, time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), Shift(Year, ref, 1))
	assert.Equal(t, ref, Shift(Timeframe("x"), ref, 3))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		entry("2024-05-10", model.EnergyPeak),
		entry("2024-05-09", model.EnergyHigh),
		entry("2024-05-07", model.EnergyLow),
		entry("2024-05-06", model.EnergyLow),
		entry("2024-05-05", model.EnergyNeutral),
	}

	s := Summarize(entries, now)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, 5, s.TotalEntries)
	assert.True(t, s.CheckedInToday)
	assert.Equal(t, 3.2, s.AverageEnergy)

	empty := Summarize(nil, now)
	assert.Equal(t, Stats{}, empty)
}
