package state

// SettingsPatch is a partial settings update. Out-of-range hours and
// week-start values are ignored field by field.
type SettingsPatch struct {
	WeekStartsOn *int
	DayStartHour *int
	DayEndHour   *int
	TagLibrary   []string
}

// UpdateSettings merges a patch into the document settings.
func (s *Store) UpdateSettings(patch SettingsPatch) error {
	return s.Commit(func(st AppState) AppState {
		set := st.Settings
		if patch.WeekStartsOn != nil && (*patch.WeekStartsOn == 0 || *patch.WeekStartsOn == 1) {
			set.WeekStartsOn = *patch.WeekStartsOn
		}
		if patch.DayStartHour != nil && *patch.DayStartHour >= 0 && *patch.DayStartHour <= 23 {
			set.DayStartHour = *patch.DayStartHour
		}
		if patch.DayEndHour != nil && *patch.DayEndHour >= 0 && *patch.DayEndHour <= 23 {
			set.DayEndHour = *patch.DayEndHour
		}
		if patch.TagLibrary != nil {
			set.TagLibrary = append([]string(nil), patch.TagLibrary...)
		}
		st.Settings = set
		return st
	})
}
