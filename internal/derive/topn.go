package derive

import (
	"sort"

	"github.com/sadopc/dayflow/internal/state"
)

// TopLimit caps every top-N list.
const TopLimit = 12

// Sentinel labels for buckets whose referenced entity is gone or was
// never set.
const (
	LabelDeleted = "(deleted)"
	LabelUnset   = "(unset)"
	LabelNoTask  = "(no task)"
)

// Bucket is one row of a top-N aggregation.
type Bucket struct {
	ID      string
	Label   string
	Minutes int
}

// rank sums, labels, sorts (minutes desc, label asc on ties) and
// truncates to TopLimit.
func rank(minutes map[string]int, label func(id string) string) []Bucket {
	buckets := make([]Bucket, 0, len(minutes))
	for id, min := range minutes {
		buckets = append(buckets, Bucket{ID: id, Label: label(id), Minutes: min})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Minutes != buckets[j].Minutes {
			return buckets[i].Minutes > buckets[j].Minutes
		}
		return buckets[i].Label < buckets[j].Label
	})
	if len(buckets) > TopLimit {
		buckets = buckets[:TopLimit]
	}
	return buckets
}

// TopTasks groups a week's tracked minutes by task. Every log lands in
// exactly one bucket; unassociated logs share the "(no task)" bucket.
func TopTasks(st state.AppState, weekStart string) []Bucket {
	minutes := map[string]int{}
	for _, l := range logsInWeek(st, weekStart) {
		minutes[l.TaskID] += l.Minutes
	}
	return rank(minutes, func(id string) string {
		if id == "" {
			return LabelNoTask
		}
		if t := st.TaskByID(id); t != nil {
			return t.Title
		}
		return LabelDeleted
	})
}

// TopTags groups tracked minutes by tag, fanning each log's full minutes
// out to every tag of its associated task. Untagged logs contribute to
// no bucket.
func TopTags(st state.AppState, weekStart string) []Bucket {
	minutes := map[string]int{}
	for _, l := range logsInWeek(st, weekStart) {
		t := st.TaskByID(l.TaskID)
		if t == nil {
			continue
		}
		for _, tag := range t.Tags {
			minutes[tag] += l.Minutes
		}
	}
	return rank(minutes, func(id string) string { return id })
}

// TopTimeTypes groups tracked minutes by time-type catalog entry.
func TopTimeTypes(st state.AppState, weekStart string) []Bucket {
	minutes := map[string]int{}
	for _, l := range logsInWeek(st, weekStart) {
		minutes[l.TimeTypeID] += l.Minutes
	}
	return rank(minutes, catalogLabel(st.Lists.TimeTypes))
}

// TopSinks groups sink-classified minutes by sink catalog entry.
func TopSinks(st state.AppState, weekStart string) []Bucket {
	minutes := map[string]int{}
	for _, l := range logsInWeek(st, weekStart) {
		if l.Kind != state.KindSink {
			continue
		}
		minutes[l.SinkID] += l.Minutes
	}
	return rank(minutes, catalogLabel(st.Lists.Sinks))
}

func catalogLabel(items []state.ListItem) func(id string) string {
	return func(id string) string {
		if id == "" {
			return LabelUnset
		}
		if name, ok := state.ListItemName(items, id); ok {
			return name
		}
		return LabelDeleted
	}
}
