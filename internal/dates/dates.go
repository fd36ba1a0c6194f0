// Package dates holds the pure calendar arithmetic shared by the store
// and the analytics engine. Days are addressed by local "YYYY-MM-DD" keys.
package dates

import "time"

const dayLayout = "2006-01-02"

// Key returns the day key for t in t's location.
func Key(t time.Time) string {
	return t.Format(dayLayout)
}

// Parse returns the midnight time.Time for a day key, in local time.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, key, time.Local)
}

// MustParse is Parse for keys known to be valid (produced by Key/AddDays).
// Invalid input yields the zero time.
func MustParse(key string) time.Time {
	t, _ := Parse(key)
	return t
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int) string {
	return Key(MustParse(key).AddDate(0, 0, n))
}

// WeekStart returns the anchor day of the calendar week containing day.
// weekStartsOn is 1 for Monday-anchored weeks, 0 for Sunday-anchored.
func WeekStart(day string, weekStartsOn int) string {
	t := MustParse(day)
	wd := int(t.Weekday()) // 0=Sunday .. 6=Saturday
	var shift int
	if weekStartsOn == 1 {
		if wd == 0 {
			shift = 6
		} else {
			shift = wd - 1
		}
	} else {
		shift = wd
	}
	return AddDays(day, -shift)
}

// WeekDays returns the 7 consecutive day keys starting at weekStart.
func WeekDays(weekStart string) []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = AddDays(weekStart, i)
	}
	return days
}

// SameWeek reports whether day falls in the week anchored at weekStart.
func SameWeek(day, weekStart string, weekStartsOn int) bool {
	return WeekStart(day, weekStartsOn) == weekStart
}

// MonthKey returns the "YYYY-MM" key for a day.
func MonthKey(day string) string {
	return MustParse(day).Format("2006-01")
}
