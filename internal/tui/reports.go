package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/derive"
	"github.com/sadopc/dayflow/internal/state"
)

// reportsModel renders the weekly analytics: a per-day bar chart, the
// tracked-vs-capacity summary and the top task/tag rankings.
type reportsModel struct {
	store  *state.Store
	width  int
	height int

	offset int // weeks back from the current week (0 = current)

	chart barchart.Model
}

func newReportsModel(s *state.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r reportsModel) weekStart() string {
	set := r.store.State().Settings
	anchor := dates.WeekStart(dates.Key(time.Now()), set.WeekStartsOn)
	return dates.AddDays(anchor, -7*r.offset)
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.buildChart()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
				r.buildChart()
			}
		}
	case statusMsg, tickMsg:
		// State may have changed under us; re-derive the chart lazily.
		r.buildChart()
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 32 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	st := r.store.State()
	breakdown := derive.DayBreakdown(st, r.weekStart())

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, day := range breakdown {
		label := day.Day[5:] // MM-DD
		if d, err := dates.Parse(day.Day); err == nil {
			label = d.Format("Mon 02")
		}
		hours := float64(day.Minutes) / 60.0
		style := barStyle
		if day.Minutes == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "tracked", Value: hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	ws := r.weekStart()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ",
		mutedStyle.Render(fmt.Sprintf("week of %s — %s", ws, dates.AddDays(ws, 6))),
	)

	st := r.store.State()
	stats := derive.StatsForWeek(st, ws, time.Now())

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			r.chart.View(), "",
			r.renderStats(stats), "",
			r.renderRankings(st, ws, w), "",
			nav,
		),
	)
}

func (r reportsModel) renderStats(stats derive.WeekStats) string {
	coverage := fmt.Sprintf("%.0f%%", stats.Coverage*100)

	rows := []string{
		fmt.Sprintf("  %-12s %s of %s elapsed (%s window)",
			titleStyle.Render("Tracked"),
			highlightStyle.Render(formatMinutes(stats.Tracked)),
			formatMinutes(stats.Elapsed),
			formatMinutes(stats.Window),
		),
		fmt.Sprintf("  %-12s %s   %-12s %s",
			titleStyle.Render("Coverage"), coverage,
			titleStyle.Render("Untracked"), formatMinutes(stats.Untracked),
		),
		fmt.Sprintf("  %s %s   %s %s   %s %s",
			successStyle.Render("useful"), formatMinutes(stats.Useful.Minutes),
			warningStyle.Render("rest"), formatMinutes(stats.Rest.Minutes),
			errorStyle.Render("sink"), formatMinutes(stats.Sink.Minutes),
		),
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderRankings(st state.AppState, ws string, w int) string {
	colW := max(24, (w-8)/2)
	tasks := r.renderBuckets("Top tasks", derive.TopTasks(st, ws), colW)
	tags := r.renderBuckets("Top tags", derive.TopTags(st, ws), colW)
	return lipgloss.JoinHorizontal(lipgloss.Top, tasks, tags)
}

func (r reportsModel) renderBuckets(label string, buckets []derive.Bucket, w int) string {
	rows := []string{titleStyle.Render(label)}
	if len(buckets) == 0 {
		rows = append(rows, mutedStyle.Render("  no data"))
	}
	limit := min(len(buckets), 6)
	for _, b := range buckets[:limit] {
		rows = append(rows, fmt.Sprintf("  %-*s %s",
			w-14, truncate(b.Label, w-14), highlightStyle.Render(formatMinutes(b.Minutes))))
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(rows, "\n"))
}
