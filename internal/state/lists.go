package state

import "strings"

// AddListItem prepends a named item to a catalog and returns its id.
// Blank names are a silent no-op.
func (s *Store) AddListItem(cat ListCategory, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	item := ListItem{ID: newID(), Name: name}
	err := s.Commit(func(st AppState) AppState {
		items := st.Lists.Category(cat)
		st.Lists.setCategory(cat, append([]ListItem{item}, items...))
		return st
	})
	return item.ID, err
}

// RenameListItem renames an item in place. Blank names and unknown ids
// are no-ops.
func (s *Store) RenameListItem(cat ListCategory, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || !listHas(s.state.Lists.Category(cat), id) {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		items := append([]ListItem(nil), st.Lists.Category(cat)...)
		for i := range items {
			if items[i].ID == id {
				items[i].Name = name
				break
			}
		}
		st.Lists.setCategory(cat, items)
		return st
	})
}

// RemoveListItem deletes an item from a catalog. Unknown ids are a no-op.
func (s *Store) RemoveListItem(cat ListCategory, id string) error {
	if !listHas(s.state.Lists.Category(cat), id) {
		return nil
	}
	return s.Commit(func(st AppState) AppState {
		old := st.Lists.Category(cat)
		items := make([]ListItem, 0, len(old))
		for _, it := range old {
			if it.ID != id {
				items = append(items, it)
			}
		}
		st.Lists.setCategory(cat, items)
		return st
	})
}

func listHas(items []ListItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// ListItemName resolves an item id within a catalog, for display.
func ListItemName(items []ListItem, id string) (string, bool) {
	for _, it := range items {
		if it.ID == id {
			return it.Name, true
		}
	}
	return "", false
}
