package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aebalz/vibetrack/internal/analytics"
	"github.com/aebalz/vibetrack/internal/calendar"
	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/repository"
)

// AnalyticsServiceInterface computes the dashboard views.
type AnalyticsServiceInterface interface {
	Stats(ctx context.Context) (analytics.Stats, error)
	Heatmap(ctx context.Context, year int) (analytics.Heatmap, error)
	Trend(ctx context.Context, timeframe, ref string, step int) (analytics.Trend, error)
}

// AnalyticsService implements AnalyticsServiceInterface.
type AnalyticsService struct {
	repo repository.EntryRepositoryInterface
	now  func() time.Time
}

func NewAnalyticsService(repo repository.EntryRepositoryInterface, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{repo: repo, now: now}
}

// Stats summarizes every entry.
func (s *AnalyticsService) Stats(ctx context.Context) (analytics.Stats, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Summarize(entries, s.now()), nil
}

// Heatmap bins the entries of year; zero means the current year.
func (s *AnalyticsService) Heatmap(ctx context.Context, year int) (analytics.Heatmap, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1 || year > 9999 {
		return analytics.Heatmap{}, validationError("year %d is out of range", year)
	}
	entries, err := s.repo.ListRange(ctx, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return analytics.Heatmap{}, err
	}
	return analytics.BinYear(year, entries), nil
}

// Trend aggregates the window of timeframe containing ref moved by step
// windows. An empty ref is now.
func (s *AnalyticsService) Trend(ctx context.Context, timeframe, ref string, step int) (analytics.Trend, error) {
	tf, err := analytics.ParseTimeframe(timeframe)
	if err != nil {
		return analytics.Trend{}, validationError("%v", err)
	}

	now := s.now()
	at := now
	if ref != "" {
		t, ok := calendar.Parse(ref, now.Location())
		if !ok {
			return analytics.Trend{}, validationError("invalid reference date %q", ref)
		}
		at = t
	}
	at = analytics.Shift(tf, at, step)

	from, to := window(tf, at)
	entries, err := s.repo.ListRange(ctx, from.Format(calendar.DayLayout), to.Format(calendar.DayLayout))
	if err != nil {
		return analytics.Trend{}, err
	}
	return analytics.Aggregate(tf, at, entries)
}

// window returns the first and last day covered by tf around t.
func window(tf analytics.Timeframe, t time.Time) (time.Time, time.Time) {
	switch tf {
	case analytics.Month:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return first, first.AddDate(0, 1, -1)
	case analytics.Year:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()),
			time.Date(t.Year(), 12, 31, 0, 0, 0, 0, t.Location())
	default:
		start := calendar.StartOfWeek(t)
		return start, start.AddDate(0, 0, 6)
	}
}

// EnergyLevels lists the static energy table.
func EnergyLevels() []model.EnergyMeta {
	return model.EnergyLevels()
}
