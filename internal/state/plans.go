package state

import "strings"

// planTasksAt returns the plan-task collection addressed by loc.
func planTasksAt(p Plans, loc PlanLocation) []PlanTask {
	switch loc.Level {
	case LevelYear:
		return p.Year
	case LevelMonth:
		return p.Month
	case LevelWeek:
		return p.Weeks[loc.WeekStart].Week
	case LevelDay:
		return p.Weeks[loc.WeekStart].Days[loc.Day]
	}
	return nil
}

// withPlanTasks returns a Plans with the collection at loc replaced,
// cloning the containers on the path so the old document is untouched.
func withPlanTasks(p Plans, loc PlanLocation, tasks []PlanTask) Plans {
	switch loc.Level {
	case LevelYear:
		p.Year = tasks
	case LevelMonth:
		p.Month = tasks
	case LevelWeek, LevelDay:
		weeks := make(map[string]WeekPlan, len(p.Weeks)+1)
		for k, v := range p.Weeks {
			weeks[k] = v
		}
		wp := weeks[loc.WeekStart]
		if loc.Level == LevelWeek {
			wp.Week = tasks
		} else {
			days := make(map[string][]PlanTask, len(wp.Days)+1)
			for k, v := range wp.Days {
				days[k] = v
			}
			days[loc.Day] = tasks
			wp.Days = days
		}
		weeks[loc.WeekStart] = wp
		p.Weeks = weeks
	}
	return p
}

// PlanTasksAt returns the plan-task collection addressed by loc.
func (st AppState) PlanTasksAt(loc PlanLocation) []PlanTask {
	return planTasksAt(st.Plans, loc)
}

// AddPlanTask adds a plan task at a horizon location, newest first, and
// returns its id. A blank title becomes a placeholder.
func (s *Store) AddPlanTask(loc PlanLocation, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = placeholderTitle
	}
	now := s.now()
	t := PlanTask{
		ID:        newID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.Commit(func(st AppState) AppState {
		tasks := append([]PlanTask{t}, planTasksAt(st.Plans, loc)...)
		st.Plans = withPlanTasks(st.Plans, loc, tasks)
		return st
	})
	return t.ID, err
}

// RenamePlanTask retitles a plan task in place. Blank titles and unknown
// ids are no-ops.
func (s *Store) RenamePlanTask(loc PlanLocation, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" || !planHas(s.state.Plans, loc, id) {
		return nil
	}
	now := s.now()
	return s.Commit(func(st AppState) AppState {
		tasks := append([]PlanTask(nil), planTasksAt(st.Plans, loc)...)
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Title = title
				tasks[i].UpdatedAt = now
				break
			}
		}
		st.Plans = withPlanTasks(st.Plans, loc, tasks)
		return st
	})
}

// TogglePlanTask flips a plan task's done flag.
func (s *Store) TogglePlanTask(loc PlanLocation, id string) error {
	if !planHas(s.state.Plans, loc, id) {
		return nil
	}
	now := s.now()
	return s.Commit(func(st AppState) AppState {
		tasks := append([]PlanTask(nil), planTasksAt(st.Plans, loc)...)
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Done = !tasks[i].Done
				tasks[i].UpdatedAt = now
				break
			}
		}
		st.Plans = withPlanTasks(st.Plans, loc, tasks)
		return st
	})
}

// MovePlanTask relocates a plan task to another horizon location in one
// atomic commit, preserving its identity and content. Unknown ids are a
// no-op.
func (s *Store) MovePlanTask(from PlanLocation, id string, to PlanLocation) error {
	if !planHas(s.state.Plans, from, id) || from == to {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		var moved PlanTask
		src := planTasksAt(st.Plans, from)
		rest := make([]PlanTask, 0, len(src))
		for _, t := range src {
			if t.ID == id {
				moved = t
			} else {
				rest = append(rest, t)
			}
		}
		plans := withPlanTasks(st.Plans, from, rest)
		dst := append([]PlanTask{moved}, planTasksAt(plans, to)...)
		st.Plans = withPlanTasks(plans, to, dst)
		return st
	})
}

// DeletePlanTask removes a plan task from its location. Unknown ids are
// a no-op.
func (s *Store) DeletePlanTask(loc PlanLocation, id string) error {
	if !planHas(s.state.Plans, loc, id) {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		src := planTasksAt(st.Plans, loc)
		rest := make([]PlanTask, 0, len(src))
		for _, t := range src {
			if t.ID != id {
				rest = append(rest, t)
			}
		}
		st.Plans = withPlanTasks(st.Plans, loc, rest)
		return st
	})
}

func planHas(p Plans, loc PlanLocation, id string) bool {
	for _, t := range planTasksAt(p, loc) {
		if t.ID == id {
			return true
		}
	}
	return false
}
