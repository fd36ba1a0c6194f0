package derive

import (
	"time"

	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/state"
)

// KindShare is one classification bucket's tracked minutes and its share
// of total tracked time and of the elapsed capacity window.
type KindShare struct {
	Minutes   int
	OfTracked float64
	OfWindow  float64
}

// WeekStats is the tracked-vs-capacity summary for one week.
type WeekStats struct {
	WeekStart string
	Window    int // full weekly capacity window, minutes
	Elapsed   int // elapsed portion of the window
	Tracked   int // logged minutes inside the week
	Untracked int // max(0, Elapsed - Tracked)
	Coverage  float64

	Useful KindShare
	Rest   KindShare
	Sink   KindShare
}

// weekInterval returns the [start, end) epoch-ms bounds of a week.
func weekInterval(weekStart string) (int64, int64) {
	start := dates.MustParse(weekStart)
	return start.UnixMilli(), start.AddDate(0, 0, 7).UnixMilli()
}

// logsInWeek selects the logs whose startedAt falls inside the week.
func logsInWeek(st state.AppState, weekStart string) []state.TimeLog {
	lo, hi := weekInterval(weekStart)
	var logs []state.TimeLog
	for _, l := range st.TimeLogs {
		if l.StartedAt >= lo && l.StartedAt < hi {
			logs = append(logs, l)
		}
	}
	return logs
}

// StatsForWeek computes the week summary against a reference now.
func StatsForWeek(st state.AppState, weekStart string, now time.Time) WeekStats {
	set := st.Settings
	ws := WeekStats{
		WeekStart: weekStart,
		Window:    WeekWindowMinutes(set),
		Elapsed:   ElapsedWindowMinutes(weekStart, now, set),
	}

	kinds := map[state.LogKind]int{}
	for _, l := range logsInWeek(st, weekStart) {
		ws.Tracked += l.Minutes
		kind := l.Kind
		if kind == "" {
			kind = state.KindUseful
		}
		kinds[kind] += l.Minutes
	}

	ws.Untracked = ws.Elapsed - ws.Tracked
	if ws.Untracked < 0 {
		ws.Untracked = 0
	}
	if ws.Elapsed > 0 {
		ws.Coverage = float64(ws.Tracked) / float64(ws.Elapsed)
	}

	ws.Useful = share(kinds[state.KindUseful], ws.Tracked, ws.Elapsed)
	ws.Rest = share(kinds[state.KindRest], ws.Tracked, ws.Elapsed)
	ws.Sink = share(kinds[state.KindSink], ws.Tracked, ws.Elapsed)
	return ws
}

func share(minutes, tracked, elapsed int) KindShare {
	s := KindShare{Minutes: minutes}
	if tracked > 0 {
		s.OfTracked = float64(minutes) / float64(tracked)
	}
	if elapsed > 0 {
		s.OfWindow = float64(minutes) / float64(elapsed)
	}
	return s
}
