package state

// ReviewPatch is a partial weekly review update.
type ReviewPatch struct {
	Wins    *string
	Lessons *string
	Focus   *string
	Next    *string
}

// UpsertReview creates the week's review entry if absent, otherwise
// merge-patches it. At most one entry exists per weekStart. Returns the
// entry's id.
func (s *Store) UpsertReview(weekStart string, patch ReviewPatch) (string, error) {
	apply := func(r *ReviewEntry) {
		if patch.Wins != nil {
			r.Wins = *patch.Wins
		}
		if patch.Lessons != nil {
			r.Lessons = *patch.Lessons
		}
		if patch.Focus != nil {
			r.Focus = *patch.Focus
		}
		if patch.Next != nil {
			r.Next = *patch.Next
		}
	}

	now := s.now()
	var id string
	for _, r := range s.state.Reviews {
		if r.WeekStart == weekStart {
			id = r.ID
			break
		}
	}

	if id == "" {
		entry := ReviewEntry{
			ID:        newID(),
			WeekStart: weekStart,
			CreatedAt: now,
			UpdatedAt: now,
		}
		apply(&entry)
		id = entry.ID
		err := s.Commit(func(st AppState) AppState {
			st.Reviews = append([]ReviewEntry{entry}, st.Reviews...)
			return st
		})
		return id, err
	}

	err := s.Commit(func(st AppState) AppState {
		reviews := append([]ReviewEntry(nil), st.Reviews...)
		for i := range reviews {
			if reviews[i].ID == id {
				apply(&reviews[i])
				reviews[i].UpdatedAt = now
				break
			}
		}
		st.Reviews = reviews
		return st
	})
	return id, err
}

// ReviewFor returns the review entry for a week anchor, or nil.
func (st AppState) ReviewFor(weekStart string) *ReviewEntry {
	for i := range st.Reviews {
		if st.Reviews[i].WeekStart == weekStart {
			return &st.Reviews[i]
		}
	}
	return nil
}
