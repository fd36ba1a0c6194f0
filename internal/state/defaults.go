package state

import "encoding/json"

// DefaultState returns the document used when storage is empty or
// unreadable: empty collections, Monday weeks, an 08:00-21:00 working
// window.
func DefaultState() AppState {
	return AppState{
		Version:  Version,
		Tasks:    []Task{},
		TimeLogs: []TimeLog{},
		Blocks:   []ScheduleBlock{},
		Lists:    defaultLists(),
		Reviews:  []ReviewEntry{},
		Settings: DefaultSettings(),
		Plans:    defaultPlans(),
	}
}

// DefaultSettings returns the settings used for a fresh document and to
// fill settings keys missing from an older one.
func DefaultSettings() Settings {
	return Settings{
		WeekStartsOn: 1,
		DayStartHour: 8,
		DayEndHour:   21,
		TagLibrary:   []string{},
	}
}

func defaultLists() Lists {
	return Lists{
		Goals:           []ListItem{},
		Projects:        []ListItem{},
		Contexts:        []ListItem{},
		Roles:           []ListItem{},
		MotivationModes: []ListItem{},
		Sinks:           []ListItem{},
		TimeTypes:       []ListItem{},
	}
}

func defaultPlans() Plans {
	return Plans{
		Year:  []PlanTask{},
		Month: []PlanTask{},
		Weeks: map[string]WeekPlan{},
	}
}

// stateDoc mirrors AppState with pointer fields so that a decoded document
// distinguishes "key absent" from a zero value. The merge rule is fixed:
// top-level keys are shallow-filled, and the lists/settings sub-objects
// are filled key by key against their own defaults.
type stateDoc struct {
	Version     *int            `json:"version"`
	Tasks       []Task          `json:"tasks"`
	TimeLogs    []TimeLog       `json:"timeLogs"`
	Blocks      []ScheduleBlock `json:"blocks"`
	Lists       *listsDoc       `json:"lists"`
	Reviews     []ReviewEntry   `json:"reviews"`
	Settings    *settingsDoc    `json:"settings"`
	ActiveTimer *ActiveTimer    `json:"activeTimer"`
	Plans       *Plans          `json:"plans"`
}

type listsDoc struct {
	Goals           []ListItem `json:"goals"`
	Projects        []ListItem `json:"projects"`
	Contexts        []ListItem `json:"contexts"`
	Roles           []ListItem `json:"roles"`
	MotivationModes []ListItem `json:"motivationModes"`
	Sinks           []ListItem `json:"sinks"`
	TimeTypes       []ListItem `json:"timeTypes"`
}

type settingsDoc struct {
	WeekStartsOn *int     `json:"weekStartsOn"`
	DayStartHour *int     `json:"dayStartHour"`
	DayEndHour   *int     `json:"dayEndHour"`
	TagLibrary   []string `json:"tagLibrary"`
}

// Decode parses a persisted document and default-fills missing keys.
// The error is non-nil only for malformed JSON; the caller decides
// whether that means "use defaults" (loader) or "reject" (import).
func Decode(data []byte) (AppState, error) {
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return AppState{}, err
	}
	return doc.merge(), nil
}

func (d *stateDoc) merge() AppState {
	st := DefaultState()
	if d.Version != nil {
		st.Version = *d.Version
	}
	if d.Tasks != nil {
		st.Tasks = d.Tasks
	}
	if d.TimeLogs != nil {
		st.TimeLogs = d.TimeLogs
	}
	if d.Blocks != nil {
		st.Blocks = d.Blocks
	}
	if d.Lists != nil {
		st.Lists = d.Lists.merge()
	}
	if d.Reviews != nil {
		st.Reviews = d.Reviews
	}
	if d.Settings != nil {
		st.Settings = d.Settings.merge()
	}
	st.ActiveTimer = d.ActiveTimer
	if d.Plans != nil {
		st.Plans = *d.Plans
		if st.Plans.Year == nil {
			st.Plans.Year = []PlanTask{}
		}
		if st.Plans.Month == nil {
			st.Plans.Month = []PlanTask{}
		}
		if st.Plans.Weeks == nil {
			st.Plans.Weeks = map[string]WeekPlan{}
		}
	}
	return st
}

func (d *listsDoc) merge() Lists {
	l := defaultLists()
	if d.Goals != nil {
		l.Goals = d.Goals
	}
	if d.Projects != nil {
		l.Projects = d.Projects
	}
	if d.Contexts != nil {
		l.Contexts = d.Contexts
	}
	if d.Roles != nil {
		l.Roles = d.Roles
	}
	if d.MotivationModes != nil {
		l.MotivationModes = d.MotivationModes
	}
	if d.Sinks != nil {
		l.Sinks = d.Sinks
	}
	if d.TimeTypes != nil {
		l.TimeTypes = d.TimeTypes
	}
	return l
}

func (d *settingsDoc) merge() Settings {
	s := DefaultSettings()
	if d.WeekStartsOn != nil {
		s.WeekStartsOn = *d.WeekStartsOn
	}
	if d.DayStartHour != nil {
		s.DayStartHour = *d.DayStartHour
	}
	if d.DayEndHour != nil {
		s.DayEndHour = *d.DayEndHour
	}
	if d.TagLibrary != nil {
		s.TagLibrary = d.TagLibrary
	}
	return s
}
