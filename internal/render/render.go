// Package render draws the dashboard views as terminal text for the CLI.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aebalz/vibetrack/internal/analytics"
	"github.com/aebalz/vibetrack/internal/model"
)

const (
	filledCell  = "■"
	emptyCell   = "·"
	paddingCell = " "
	barRune     = "█"

	// DefaultBarWidth is the width of a full (energy 5) trend bar.
	DefaultBarWidth = 40
)

var weekdayLabels = [7]string{"T2", "T3", "T4", "T5", "T6", "T7", "CN"}

// Renderer writes styled views to one output.
type Renderer struct {
	lg *lipgloss.Renderer

	title  lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
	panel  lipgloss.Style
	accent lipgloss.Style
}

// New returns a Renderer whose color profile is detected from w. Output that
// is not a terminal gets plain text.
func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	brand := lipgloss.Color(model.Themes()[0].Main)
	return &Renderer{
		lg:     lg,
		title:  lg.NewStyle().Bold(true).Foreground(brand),
		muted:  lg.NewStyle().Foreground(lipgloss.Color("#666666")),
		label:  lg.NewStyle().Width(4),
		panel:  lg.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#414868")).Padding(0, 1),
		accent: lg.NewStyle().Bold(true).Foreground(brand),
	}
}

func (r *Renderer) colored(color, s string) string {
	if color == "" || color == analytics.BrandColor {
		color = model.Themes()[0].Main
	}
	return r.lg.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

// Heatmap draws the year as seven weekday rows and one column per week.
func (r *Renderer) Heatmap(h analytics.Heatmap) string {
	weeks := h.Weeks()

	rows := make([]string, 0, 7)
	for d := 0; d < 7; d++ {
		var b strings.Builder
		b.WriteString(r.label.Render(weekdayLabels[d]))
		for w, week := range weeks {
			switch {
			case d >= len(week):
				b.WriteString(paddingCell)
			case w == 0 && d < h.Padding:
				b.WriteString(paddingCell)
			case week[d] == nil:
				b.WriteString(r.colored(model.EmptyColor, emptyCell))
			default:
				b.WriteString(r.colored(week[d].Energy.Color(), filledCell))
			}
		}
		rows = append(rows, b.String())
	}

	header := r.title.Render(fmt.Sprintf("Năm %d", h.Year))
	return r.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(rows, "\n"), "", r.legend(),
	))
}

func (r *Renderer) legend() string {
	parts := []string{r.muted.Render("Ít")}
	for _, m := range model.EnergyLevels() {
		parts = append(parts, r.colored(m.Color, filledCell))
	}
	parts = append(parts, r.muted.Render("Nhiều"))
	return strings.Join(parts, " ")
}

// Trend draws one horizontal bar per bucket, scaled so energy 5 fills width.
func (r *Renderer) Trend(t analytics.Trend, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}

	labelWidth := 0
	for _, b := range t.Buckets {
		if n := lipgloss.Width(b.Label); n > labelWidth {
			labelWidth = n
		}
	}
	labelStyle := r.lg.NewStyle().Width(labelWidth + 1)

	lines := make([]string, 0, len(t.Buckets))
	for _, b := range t.Buckets {
		n := BarLength(b.Value, width)
		bar := r.colored(b.Color, strings.Repeat(barRune, n))
		value := r.muted.Render("-")
		if b.Value > 0 {
			value = fmt.Sprintf("%.1f", b.Value)
		}
		lines = append(lines, labelStyle.Render(b.Label)+bar+strings.Repeat(" ", width-n+1)+value)
	}

	header := r.title.Render(t.RangeLabel)
	footer := r.muted.Render("Trung bình: ") + r.accent.Render(fmt.Sprintf("%.1f", t.Average))
	return r.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(lines, "\n"), "", footer,
	))
}

// BarLength scales an energy value in [0,5] to a bar of at most width runes.
func BarLength(value float64, width int) int {
	if value <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(value / float64(model.EnergyPeak) * float64(width)))
	if n < 1 {
		return 1
	}
	if n > width {
		return width
	}
	return n
}

// Stats draws the streak summary.
func (r *Renderer) Stats(s analytics.Stats) string {
	today := "chưa"
	if s.CheckedInToday {
		today = "rồi"
	}
	rows := []string{
		r.title.Render("Chuỗi ngày"),
		"",
		r.muted.Render("Hiện tại:    ") + r.accent.Render(fmt.Sprintf("%d ngày", s.CurrentStreak)),
		r.muted.Render("Dài nhất:    ") + fmt.Sprintf("%d ngày", s.LongestStreak),
		r.muted.Render("Trung bình:  ") + fmt.Sprintf("%.1f", s.AverageEnergy),
		r.muted.Render("Tổng số:     ") + fmt.Sprintf("%d", s.TotalEntries),
		r.muted.Render("Hôm nay:     ") + today,
	}
	return r.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
