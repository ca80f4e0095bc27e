package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aebalz/vibetrack/internal/calendar"
	"github.com/aebalz/vibetrack/internal/model"
)

// Timeframe selects the trend chart granularity.
type Timeframe string

const (
	Week  Timeframe = "week"
	Month Timeframe = "month"
	Year  Timeframe = "year"
)

// BrandColor marks non-empty year buckets; the client substitutes its theme.
const BrandColor = "var(--brand-color)"

// ErrUnknownTimeframe is returned for anything but week, month or year.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

var (
	weekdayLabels = [7]string{"T2", "T3", "T4", "T5", "T6", "T7", "CN"}
	monthLabels   = [12]string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8", "T9", "T10", "T11", "T12"}
)

// ParseTimeframe validates s. An empty string means Week.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return Week, nil
	case Week, Month, Year:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
	}
}

// Bucket is one bar of a trend chart. Value is 0 when nothing was recorded.
type Bucket struct {
	Label string  `json:"label"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Trend is a chart for one window plus its average over non-empty buckets.
type Trend struct {
	Timeframe  Timeframe `json:"timeframe"`
	Reference  string    `json:"reference"`
	RangeLabel string    `json:"rangeLabel"`
	Buckets    []Bucket  `json:"buckets"`
	Average    float64   `json:"average"`
}

// Aggregate builds the chart of tf around ref. Day matching is done in ref's
// location.
func Aggregate(tf Timeframe, ref time.Time, entries []model.JournalEntry) (Trend, error) {
	var (
		buckets []Bucket
		label   string
	)

	switch tf {
	case Week:
		buckets, label = weekBuckets(ref, indexByDay(entries))
	case Month:
		buckets, label = monthBuckets(ref, indexByDay(entries))
	case Year:
		buckets, label = yearBuckets(ref, entries)
	default:
		return Trend{}, fmt.Errorf("%w: %q", ErrUnknownTimeframe, tf)
	}

	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value
	}

	return Trend{
		Timeframe:  tf,
		Reference:  calendar.Today(ref),
		RangeLabel: label,
		Buckets:    buckets,
		Average:    ActiveAverage(values),
	}, nil
}

// Shift moves ref by steps units of tf: 7 days per week, one calendar month
// per month, one year per year. Negative steps go back.
func Shift(tf Timeframe, ref time.Time, steps int) time.Time {
	switch tf {
	case Week:
		return ref.AddDate(0, 0, 7*steps)
	case Month:
		return ref.AddDate(0, steps, 0)
	case Year:
		return ref.AddDate(steps, 0, 0)
	default:
		return ref
	}
}

// ActiveAverage is the mean of the values greater than zero, or 0 if there
// are none. Empty days are excluded rather than counted as zero.
func ActiveAverage(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func dayBucket(label string, day time.Time, byDay map[string]model.JournalEntry) Bucket {
	key := day.Format(calendar.DayLayout)
	b := Bucket{Label: label, Date: key, Color: model.EmptyColor}
	if e, ok := byDay[key]; ok {
		b.Value = float64(e.Energy)
		b.Color = e.Energy.Color()
	}
	return b
}

func weekBuckets(ref time.Time, byDay map[string]model.JournalEntry) ([]Bucket, string) {
	start := calendar.StartOfWeek(ref)
	end := start.AddDate(0, 0, 6)

	buckets := make([]Bucket, 0, 7)
	for i := 0; i < 7; i++ {
		buckets = append(buckets, dayBucket(weekdayLabels[i], start.AddDate(0, 0, i), byDay))
	}

	label := fmt.Sprintf("%d Th%d - %d Th%d", start.Day(), int(start.Month()), end.Day(), int(end.Month()))
	return buckets, label
}

func monthBuckets(ref time.Time, byDay map[string]model.JournalEntry) ([]Bucket, string) {
	year, month := ref.Year(), ref.Month()
	n := calendar.DaysInMonth(year, month)

	buckets := make([]Bucket, 0, n)
	for d := 1; d <= n; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, ref.Location())
		buckets = append(buckets, dayBucket(strconv.Itoa(d), day, byDay))
	}

	return buckets, fmt.Sprintf("Tháng %d, %d", int(month), year)
}

func yearBuckets(ref time.Time, entries []model.JournalEntry) ([]Bucket, string) {
	year := ref.Year()

	var sums, counts [12]float64
	prefix := fmt.Sprintf("%04d-", year)
	for _, e := range entries {
		d := string(e.Date)
		if !strings.HasPrefix(d, prefix) || len(d) < 7 {
			continue
		}
		m, err := strconv.Atoi(d[5:7])
		if err != nil || m < 1 || m > 12 {
			continue
		}
		sums[m-1] += float64(e.Energy)
		counts[m-1]++
	}

	buckets := make([]Bucket, 12)
	for i := range buckets {
		b := Bucket{Label: monthLabels[i], Date: fmt.Sprintf("%04d-%02d", year, i+1), Color: model.EmptyColor}
		if counts[i] > 0 {
			b.Value = sums[i] / counts[i]
			b.Color = BrandColor
		}
		buckets[i] = b
	}

	return buckets, fmt.Sprintf("Năm %d", year)
}
