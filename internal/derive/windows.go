// Package derive computes read-only analytics views from a document
// snapshot. Every function is pure: same snapshot, settings and reference
// time in, same output out.
package derive

import (
	"time"

	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/state"
)

// DayWindowMinutes is the length of the daily working window. A window
// whose end hour is not after its start wraps past midnight.
func DayWindowMinutes(set state.Settings) int {
	if set.DayEndHour > set.DayStartHour {
		return (set.DayEndHour - set.DayStartHour) * 60
	}
	return (24 - set.DayStartHour + set.DayEndHour) * 60
}

// WeekWindowMinutes is the full weekly capacity window.
func WeekWindowMinutes(set state.Settings) int {
	return 7 * DayWindowMinutes(set)
}

// ElapsedWindowMinutes is the portion of a week's capacity window that
// lies behind now: the full window for past weeks, zero for future
// weeks, and for the current week the sum of elapsed whole-day windows
// plus the clamped partial window of the current day.
func ElapsedWindowMinutes(weekStart string, now time.Time, set state.Settings) int {
	today := dates.Key(now)
	nowWeek := dates.WeekStart(today, set.WeekStartsOn)
	if weekStart < nowWeek {
		return WeekWindowMinutes(set)
	}
	if weekStart > nowWeek {
		return 0
	}

	dayWindow := DayWindowMinutes(set)
	elapsed := 0
	for _, day := range dates.WeekDays(weekStart) {
		if day < today {
			elapsed += dayWindow
		}
	}

	nowMin := now.Hour()*60 + now.Minute()
	partial := nowMin - set.DayStartHour*60
	if partial < 0 && set.DayEndHour <= set.DayStartHour {
		// Early morning inside yesterday's wrapped window tail.
		partial += 24 * 60
	}
	if partial < 0 {
		partial = 0
	}
	if partial > dayWindow {
		partial = dayWindow
	}
	return elapsed + partial
}
