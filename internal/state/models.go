package state

// Version is the document schema version written to storage and required
// by backup import.
const Version = 1

// Status is a task's lifecycle state.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// LogKind classifies a time log for analytics. An empty kind counts as
// useful.
type LogKind string

const (
	KindUseful LogKind = "useful"
	KindRest   LogKind = "rest"
	KindSink   LogKind = "sink"
)

// Task is a unit of work. PlannedDate without PlannedStart means the task
// is flexible for that day; a PlannedStart marks it hard-scheduled.
// Nullable fields use pointers; empty string ids mean "unset".
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
	Status       Status   `json:"status"`
	IsProject    bool     `json:"isProject"`
	ProjectID    string   `json:"projectId"`
	ParentID     string   `json:"parentId"`
	PlannedDate  string   `json:"plannedDate"`
	PlannedStart string   `json:"plannedStart"`
	EstimateMin  *int     `json:"estimateMin"`
	Priority     int      `json:"priority"`
	DeadlineAt   *int64   `json:"deadlineAt"`
	CreatedAt    int64    `json:"createdAt"`
	UpdatedAt    int64    `json:"updatedAt"`
}

// TimeLog records a tracked interval. Minutes is always derived from the
// interval, never set directly.
type TimeLog struct {
	ID         string  `json:"id"`
	TaskID     string  `json:"taskId"`
	StartedAt  int64   `json:"startedAt"`
	EndedAt    int64   `json:"endedAt"`
	Minutes    int     `json:"minutes"`
	Note       string  `json:"note"`
	Kind       LogKind `json:"kind"`
	SinkID     string  `json:"sinkId"`
	TimeTypeID string  `json:"timeTypeId"`
}

// ActiveTimer is the (at most one) running timer: a start timestamp plus
// the classification the resulting log will carry.
type ActiveTimer struct {
	TaskID     string  `json:"taskId"`
	StartedAt  int64   `json:"startedAt"`
	Kind       LogKind `json:"kind"`
	SinkID     string  `json:"sinkId"`
	TimeTypeID string  `json:"timeTypeId"`
}

// ScheduleBlock is a committed placement of a task inside one day's
// working window. Start/end are minutes since midnight, end > start.
type ScheduleBlock struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Date      string `json:"date"`
	StartMin  int    `json:"startMin"`
	EndMin    int    `json:"endMin"`
	Locked    bool   `json:"locked"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// ListItem is a named catalog entry (goal, project, context, ...).
type ListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCategory identifies one of the fixed catalogs in Lists.
type ListCategory int

const (
	ListGoals ListCategory = iota
	ListProjects
	ListContexts
	ListRoles
	ListMotivationModes
	ListSinks
	ListTimeTypes
)

// ListCategories enumerates every catalog, in display order.
var ListCategories = []ListCategory{
	ListGoals, ListProjects, ListContexts, ListRoles,
	ListMotivationModes, ListSinks, ListTimeTypes,
}

func (c ListCategory) String() string {
	switch c {
	case ListGoals:
		return "goals"
	case ListProjects:
		return "projects"
	case ListContexts:
		return "contexts"
	case ListRoles:
		return "roles"
	case ListMotivationModes:
		return "motivationModes"
	case ListSinks:
		return "sinks"
	case ListTimeTypes:
		return "timeTypes"
	}
	return "unknown"
}

// Lists holds the catalogs, newest item first within each.
type Lists struct {
	Goals           []ListItem `json:"goals"`
	Projects        []ListItem `json:"projects"`
	Contexts        []ListItem `json:"contexts"`
	Roles           []ListItem `json:"roles"`
	MotivationModes []ListItem `json:"motivationModes"`
	Sinks           []ListItem `json:"sinks"`
	TimeTypes       []ListItem `json:"timeTypes"`
}

// Category returns the slice for a catalog. Unknown categories map to an
// empty slice so callers never see a nil panic.
func (l *Lists) Category(c ListCategory) []ListItem {
	switch c {
	case ListGoals:
		return l.Goals
	case ListProjects:
		return l.Projects
	case ListContexts:
		return l.Contexts
	case ListRoles:
		return l.Roles
	case ListMotivationModes:
		return l.MotivationModes
	case ListSinks:
		return l.Sinks
	case ListTimeTypes:
		return l.TimeTypes
	}
	return nil
}

func (l *Lists) setCategory(c ListCategory, items []ListItem) {
	switch c {
	case ListGoals:
		l.Goals = items
	case ListProjects:
		l.Projects = items
	case ListContexts:
		l.Contexts = items
	case ListRoles:
		l.Roles = items
	case ListMotivationModes:
		l.MotivationModes = items
	case ListSinks:
		l.Sinks = items
	case ListTimeTypes:
		l.TimeTypes = items
	}
}

// ReviewEntry is a weekly retrospective, one per week anchor day.
type ReviewEntry struct {
	ID        string `json:"id"`
	WeekStart string `json:"weekStart"`
	Wins      string `json:"wins"`
	Lessons   string `json:"lessons"`
	Focus     string `json:"focus"`
	Next      string `json:"next"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// PlanLevel is a planning horizon.
type PlanLevel int

const (
	LevelYear PlanLevel = iota
	LevelMonth
	LevelWeek
	LevelDay
)

func (l PlanLevel) String() string {
	switch l {
	case LevelYear:
		return "year"
	case LevelMonth:
		return "month"
	case LevelWeek:
		return "week"
	case LevelDay:
		return "day"
	}
	return "unknown"
}

// PlanLocation addresses one plan-task collection: the horizon level plus
// the week anchor for week/day levels and the day key for the day level.
type PlanLocation struct {
	Level     PlanLevel `json:"level"`
	WeekStart string    `json:"weekStart,omitempty"`
	Day       string    `json:"day,omitempty"`
}

// PlanTask is an item in the hierarchical plan. Its identity never changes
// when it moves between locations.
type PlanTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// WeekPlan holds one week's plan tasks plus its per-day breakdowns,
// keyed by day key.
type WeekPlan struct {
	Week []PlanTask            `json:"week"`
	Days map[string][]PlanTask `json:"days"`
}

// Plans is the full horizon hierarchy. Weeks is keyed by week anchor day.
type Plans struct {
	Year  []PlanTask          `json:"year"`
	Month []PlanTask          `json:"month"`
	Weeks map[string]WeekPlan `json:"weeks"`
}

// Settings is the user configuration stored inside the document. If
// DayEndHour <= DayStartHour the daily working window wraps past midnight.
type Settings struct {
	WeekStartsOn int      `json:"weekStartsOn"` // 1=Monday, 0=Sunday
	DayStartHour int      `json:"dayStartHour"`
	DayEndHour   int      `json:"dayEndHour"`
	TagLibrary   []string `json:"tagLibrary"`
}

// AppState is the single root document. Every mutation replaces it
// wholesale through Store.Commit.
type AppState struct {
	Version     int             `json:"version"`
	Tasks       []Task          `json:"tasks"`
	TimeLogs    []TimeLog       `json:"timeLogs"`
	Blocks      []ScheduleBlock `json:"blocks"`
	Lists       Lists           `json:"lists"`
	Reviews     []ReviewEntry   `json:"reviews"`
	Settings    Settings        `json:"settings"`
	ActiveTimer *ActiveTimer    `json:"activeTimer"`
	Plans       Plans           `json:"plans"`
}

// TaskByID returns the task with the given id, or nil.
func (st AppState) TaskByID(id string) *Task {
	for i := range st.Tasks {
		if st.Tasks[i].ID == id {
			return &st.Tasks[i]
		}
	}
	return nil
}

// LogByID returns the time log with the given id, or nil.
func (st AppState) LogByID(id string) *TimeLog {
	for i := range st.TimeLogs {
		if st.TimeLogs[i].ID == id {
			return &st.TimeLogs[i]
		}
	}
	return nil
}

// BlockByID returns the schedule block with the given id, or nil.
func (st AppState) BlockByID(id string) *ScheduleBlock {
	for i := range st.Blocks {
		if st.Blocks[i].ID == id {
			return &st.Blocks[i]
		}
	}
	return nil
}
