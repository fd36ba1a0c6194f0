package state

import "strings"

// placeholderTitle replaces a blank task title instead of rejecting it.
const placeholderTitle = "(untitled)"

// TaskPatch is a partial task update. Nil fields are left unchanged.
// For nullable fields the zero value clears: an empty PlannedDate or
// PlannedStart removes the planning info, EstimateMin <= 0 and
// DeadlineAt <= 0 clear their fields.
type TaskPatch struct {
	Title        *string
	Notes        *string
	Tags         []string
	Status       *Status
	IsProject    *bool
	ProjectID    *string
	ParentID     *string
	PlannedDate  *string
	PlannedStart *string
	EstimateMin  *int
	Priority     *int
	DeadlineAt   *int64
}

func applyTaskPatch(t *Task, p TaskPatch) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			title = placeholderTitle
		}
		t.Title = title
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), p.Tags...)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.IsProject != nil {
		t.IsProject = *p.IsProject
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.ParentID != nil {
		t.ParentID = *p.ParentID
	}
	if p.PlannedDate != nil {
		t.PlannedDate = *p.PlannedDate
	}
	if p.PlannedStart != nil {
		t.PlannedStart = *p.PlannedStart
	}
	if p.EstimateMin != nil {
		if *p.EstimateMin <= 0 {
			t.EstimateMin = nil
		} else {
			v := *p.EstimateMin
			t.EstimateMin = &v
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DeadlineAt != nil {
		if *p.DeadlineAt <= 0 {
			t.DeadlineAt = nil
		} else {
			v := *p.DeadlineAt
			t.DeadlineAt = &v
		}
	}
}

// CreateTask adds a task to the front of the collection (newest first)
// and returns its id. A blank title becomes a placeholder.
func (s *Store) CreateTask(title string, patch TaskPatch) (string, error) {
	now := s.now()
	t := Task{
		ID:        newID(),
		Title:     strings.TrimSpace(title),
		Tags:      []string{},
		Status:    StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.Title == "" {
		t.Title = placeholderTitle
	}
	applyTaskPatch(&t, patch)

	err := s.Commit(func(st AppState) AppState {
		st.Tasks = append([]Task{t}, st.Tasks...)
		st.Settings = foldTags(st.Settings, t.Tags)
		return st
	})
	return t.ID, err
}

// UpdateTask merges a patch into a task and refreshes updatedAt. Unknown
// ids are a no-op.
func (s *Store) UpdateTask(id string, patch TaskPatch) error {
	if s.state.TaskByID(id) == nil {
		return nil
	}
	now := s.now()
	return s.Commit(func(st AppState) AppState {
		tasks := append([]Task(nil), st.Tasks...)
		for i := range tasks {
			if tasks[i].ID != id {
				continue
			}
			applyTaskPatch(&tasks[i], patch)
			tasks[i].UpdatedAt = now
			st.Settings = foldTags(st.Settings, tasks[i].Tags)
			break
		}
		st.Tasks = tasks
		return st
	})
}

// MoveTask re-plans a task: a specialization of UpdateTask restricted to
// the planning fields. Empty strings clear them.
func (s *Store) MoveTask(id, plannedDate, plannedStart string) error {
	return s.UpdateTask(id, TaskPatch{
		PlannedDate:  &plannedDate,
		PlannedStart: &plannedStart,
	})
}

// ToggleTask flips a task between todo and done.
func (s *Store) ToggleTask(id string) error {
	t := s.state.TaskByID(id)
	if t == nil {
		return nil
	}
	next := StatusDone
	if t.Status == StatusDone {
		next = StatusTodo
	}
	return s.UpdateTask(id, TaskPatch{Status: &next})
}

// DeleteTask removes a task and cascades to every time log and schedule
// block referencing it. Logs with no task are untouched.
func (s *Store) DeleteTask(id string) error {
	if s.state.TaskByID(id) == nil {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		tasks := make([]Task, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			if t.ID != id {
				tasks = append(tasks, t)
			}
		}
		logs := make([]TimeLog, 0, len(st.TimeLogs))
		for _, l := range st.TimeLogs {
			if l.TaskID != id {
				logs = append(logs, l)
			}
		}
		blocks := make([]ScheduleBlock, 0, len(st.Blocks))
		for _, b := range st.Blocks {
			if b.TaskID != id {
				blocks = append(blocks, b)
			}
		}
		st.Tasks = tasks
		st.TimeLogs = logs
		st.Blocks = blocks
		return st
	})
}

// foldTags adds unseen tags to the tag library, preserving first-seen
// order.
func foldTags(s Settings, tags []string) Settings {
	if len(tags) == 0 {
		return s
	}
	known := make(map[string]bool, len(s.TagLibrary))
	for _, t := range s.TagLibrary {
		known[t] = true
	}
	lib := s.TagLibrary
	copied := false
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || known[t] {
			continue
		}
		if !copied {
			lib = append([]string(nil), lib...)
			copied = true
		}
		lib = append(lib, t)
		known[t] = true
	}
	s.TagLibrary = lib
	return s
}
