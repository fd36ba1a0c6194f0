package derive

import (
	"time"

	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/state"
)

// DayStat is one day's tracked totals inside a week.
type DayStat struct {
	Day     string
	Minutes int
	Count   int
}

// DayBreakdown buckets a week's logs by the local calendar day of their
// start, returning exactly 7 entries in week order. MaxMinutes over the
// result drives bar normalization in the reports view.
func DayBreakdown(st state.AppState, weekStart string) []DayStat {
	days := dates.WeekDays(weekStart)
	index := make(map[string]int, 7)
	stats := make([]DayStat, 7)
	for i, d := range days {
		index[d] = i
		stats[i] = DayStat{Day: d}
	}

	for _, l := range logsInWeek(st, weekStart) {
		day := dates.Key(time.UnixMilli(l.StartedAt))
		if i, ok := index[day]; ok {
			stats[i].Minutes += l.Minutes
			stats[i].Count++
		}
	}
	return stats
}

// MaxMinutes returns the largest per-day total, for scaling bars.
func MaxMinutes(stats []DayStat) int {
	max := 0
	for _, s := range stats {
		if s.Minutes > max {
			max = s.Minutes
		}
	}
	return max
}
