package state

import "sort"

// BlockPatch is a partial schedule-block update.
type BlockPatch struct {
	StartMin *int
	EndMin   *int
	Locked   *bool
	Date     *string
}

// AddBlock commits a hard-scheduled block for a task on a day. Inverted
// or empty ranges are a silent no-op.
func (s *Store) AddBlock(taskID, date string, startMin, endMin int) (string, error) {
	if endMin <= startMin {
		return "", nil
	}
	now := s.now()
	b := ScheduleBlock{
		ID:        newID(),
		TaskID:    taskID,
		Date:      date,
		StartMin:  startMin,
		EndMin:    endMin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.Commit(func(st AppState) AppState {
		st.Blocks = append([]ScheduleBlock{b}, st.Blocks...)
		return st
	})
	return b.ID, err
}

// UpdateBlock applies a patch to a block. A patch that would leave
// endMin <= startMin is rejected and the block left unchanged; unknown
// ids are a no-op.
func (s *Store) UpdateBlock(id string, patch BlockPatch) error {
	cur := s.state.BlockByID(id)
	if cur == nil {
		return nil
	}
	next := *cur
	if patch.StartMin != nil {
		next.StartMin = *patch.StartMin
	}
	if patch.EndMin != nil {
		next.EndMin = *patch.EndMin
	}
	if patch.Locked != nil {
		next.Locked = *patch.Locked
	}
	if patch.Date != nil {
		next.Date = *patch.Date
	}
	if next.EndMin <= next.StartMin {
		return nil
	}
	next.UpdatedAt = s.now()

	return s.Commit(func(st AppState) AppState {
		blocks := append([]ScheduleBlock(nil), st.Blocks...)
		for i := range blocks {
			if blocks[i].ID == id {
				blocks[i] = next
				break
			}
		}
		st.Blocks = blocks
		return st
	})
}

// DeleteBlock removes a block. Unknown ids are a no-op.
func (s *Store) DeleteBlock(id string) error {
	if s.state.BlockByID(id) == nil {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		blocks := make([]ScheduleBlock, 0, len(st.Blocks))
		for _, b := range st.Blocks {
			if b.ID != id {
				blocks = append(blocks, b)
			}
		}
		st.Blocks = blocks
		return st
	})
}

// BlocksOn returns the day's blocks sorted by start time.
func (st AppState) BlocksOn(date string) []ScheduleBlock {
	var blocks []ScheduleBlock
	for _, b := range st.Blocks {
		if b.Date == date {
			blocks = append(blocks, b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].StartMin < blocks[j].StartMin })
	return blocks
}

// FindSlot searches a day's working window for the earliest gap of at
// least durationMin minutes that overlaps no existing block: first the
// gap before the first block, then each gap between consecutive blocks,
// then the gap after the last. ok=false means no free window.
//
// When the working window wraps past midnight the placement window is
// clamped to the end of the calendar day; blocks never span midnight.
func FindSlot(blocks []ScheduleBlock, durationMin int, set Settings) (startMin, endMin int, ok bool) {
	if durationMin <= 0 {
		return 0, 0, false
	}
	winStart := set.DayStartHour * 60
	winEnd := set.DayEndHour * 60
	if set.DayEndHour <= set.DayStartHour {
		winEnd = 24 * 60
	}

	sorted := append([]ScheduleBlock(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMin < sorted[j].StartMin })

	cursor := winStart
	for _, b := range sorted {
		if b.StartMin-cursor >= durationMin {
			return cursor, cursor + durationMin, true
		}
		if b.EndMin > cursor {
			cursor = b.EndMin
		}
	}
	if winEnd-cursor >= durationMin {
		return cursor, cursor + durationMin, true
	}
	return 0, 0, false
}

// PlaceTask finds the earliest free slot on a day and commits a block
// there. ok=false (and no commit) when nothing fits; callers surface
// that as "no free window", not as an error.
func (s *Store) PlaceTask(taskID, date string, durationMin int) (ScheduleBlock, bool, error) {
	startMin, endMin, ok := FindSlot(s.state.BlocksOn(date), durationMin, s.state.Settings)
	if !ok {
		return ScheduleBlock{}, false, nil
	}
	id, err := s.AddBlock(taskID, date, startMin, endMin)
	b := s.state.BlockByID(id)
	if b == nil {
		return ScheduleBlock{}, false, err
	}
	return *b, true, err
}
