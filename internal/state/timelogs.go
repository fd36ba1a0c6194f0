package state

// LogMinutes is the one duration rule: ceiling-minute length of
// [startedAt, endedAt), never below one minute.
func LogMinutes(startedAt, endedAt int64) int {
	ms := endedAt - startedAt
	min := int((ms + 59_999) / 60_000)
	if min < 1 {
		min = 1
	}
	return min
}

// Classification carries the analytics labels attached to a log or timer.
type Classification struct {
	Kind       LogKind
	SinkID     string
	TimeTypeID string
}

// ManualLog is the input to AddTimeLog.
type ManualLog struct {
	TaskID    string
	StartedAt int64
	EndedAt   int64
	Note      string
	Classification
}

// TimeLogPatch is a partial time-log update. Minutes cannot be patched;
// it is recomputed from the resulting interval.
type TimeLogPatch struct {
	TaskID     *string
	StartedAt  *int64
	EndedAt    *int64
	Note       *string
	Kind       *LogKind
	SinkID     *string
	TimeTypeID *string
}

// AddTimeLog records a manually entered interval. Inverted or empty
// ranges are rejected as a silent no-op (empty id returned).
func (s *Store) AddTimeLog(p ManualLog) (string, error) {
	if p.EndedAt <= p.StartedAt {
		return "", nil
	}
	l := TimeLog{
		ID:         newID(),
		TaskID:     p.TaskID,
		StartedAt:  p.StartedAt,
		EndedAt:    p.EndedAt,
		Minutes:    LogMinutes(p.StartedAt, p.EndedAt),
		Note:       p.Note,
		Kind:       p.Kind,
		SinkID:     p.SinkID,
		TimeTypeID: p.TimeTypeID,
	}
	err := s.Commit(func(st AppState) AppState {
		st.TimeLogs = append([]TimeLog{l}, st.TimeLogs...)
		return st
	})
	return l.ID, err
}

// UpdateTimeLog applies a patch and recomputes minutes. A patch that
// would leave endedAt <= startedAt is rejected and the log is left
// unchanged; unknown ids are a no-op.
func (s *Store) UpdateTimeLog(id string, patch TimeLogPatch) error {
	cur := s.state.LogByID(id)
	if cur == nil {
		return nil
	}

	next := *cur
	if patch.TaskID != nil {
		next.TaskID = *patch.TaskID
	}
	if patch.StartedAt != nil {
		next.StartedAt = *patch.StartedAt
	}
	if patch.EndedAt != nil {
		next.EndedAt = *patch.EndedAt
	}
	if patch.Note != nil {
		next.Note = *patch.Note
	}
	if patch.Kind != nil {
		next.Kind = *patch.Kind
	}
	if patch.SinkID != nil {
		next.SinkID = *patch.SinkID
	}
	if patch.TimeTypeID != nil {
		next.TimeTypeID = *patch.TimeTypeID
	}
	if next.EndedAt <= next.StartedAt {
		return nil
	}
	next.Minutes = LogMinutes(next.StartedAt, next.EndedAt)

	return s.Commit(func(st AppState) AppState {
		logs := append([]TimeLog(nil), st.TimeLogs...)
		for i := range logs {
			if logs[i].ID == id {
				logs[i] = next
				break
			}
		}
		st.TimeLogs = logs
		return st
	})
}

// DeleteTimeLog removes a log. Unknown ids are a no-op.
func (s *Store) DeleteTimeLog(id string) error {
	if s.state.LogByID(id) == nil {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		logs := make([]TimeLog, 0, len(st.TimeLogs))
		for _, l := range st.TimeLogs {
			if l.ID != id {
				logs = append(logs, l)
			}
		}
		st.TimeLogs = logs
		return st
	})
}
