package state

// StartTimer begins tracking against a task (empty taskID tracks
// unassociated time). An already-running timer is overwritten and its
// elapsed time discarded; only StopTimer produces a log.
func (s *Store) StartTimer(taskID string, c Classification) error {
	timer := &ActiveTimer{
		TaskID:     taskID,
		StartedAt:  s.now(),
		Kind:       c.Kind,
		SinkID:     c.SinkID,
		TimeTypeID: c.TimeTypeID,
	}
	return s.Commit(func(st AppState) AppState {
		st.ActiveTimer = timer
		return st
	})
}

// StopTimer resolves the active timer into exactly one time log and
// clears it, returning the new log's id. No-op when no timer is running.
func (s *Store) StopTimer(note string) (string, error) {
	timer := s.state.ActiveTimer
	if timer == nil {
		return "", nil
	}
	now := s.now()
	if now <= timer.StartedAt {
		now = timer.StartedAt + 1
	}
	l := TimeLog{
		ID:         newID(),
		TaskID:     timer.TaskID,
		StartedAt:  timer.StartedAt,
		EndedAt:    now,
		Minutes:    LogMinutes(timer.StartedAt, now),
		Note:       note,
		Kind:       timer.Kind,
		SinkID:     timer.SinkID,
		TimeTypeID: timer.TimeTypeID,
	}
	err := s.Commit(func(st AppState) AppState {
		st.TimeLogs = append([]TimeLog{l}, st.TimeLogs...)
		st.ActiveTimer = nil
		return st
	})
	return l.ID, err
}
