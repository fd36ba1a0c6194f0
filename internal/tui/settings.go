package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayflow/internal/state"
)

var categoryLabels = map[state.ListCategory]string{
	state.ListGoals:           "Goals",
	state.ListProjects:        "Projects",
	state.ListContexts:        "Contexts",
	state.ListRoles:           "Roles",
	state.ListMotivationModes: "Motivation modes",
	state.ListSinks:           "Sinks",
	state.ListTimeTypes:       "Time types",
}

// settingsModel edits the document settings and manages the catalogs
// (goals, sinks, time types, ...).
type settingsModel struct {
	store  *state.Store
	width  int
	height int

	catIdx  int // which catalog is focused
	itemIdx int

	formActive bool
	form       *huh.Form
	formType   string // "settings", "item", "rename_item"
	editingID  string

	// Form values as pointers (survive value copies)
	weekStart *string
	dayStart  *string
	dayEnd    *string
	itemName  *string
}

func newSettingsModel(s *state.Store) settingsModel {
	ws, ds, de, name := "", "", "", ""
	return settingsModel{
		store:     s,
		weekStart: &ws,
		dayStart:  &ds,
		dayEnd:    &de,
		itemName:  &name,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) category() state.ListCategory {
	return state.ListCategories[s.catIdx]
}

func (s settingsModel) items() []state.ListItem {
	lists := s.store.State().Lists
	return lists.Category(s.category())
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	items := s.items()
	switch {
	case key.Matches(keyMsg, keys.Enter):
		return s.showSettingsForm()
	case key.Matches(keyMsg, keys.Left):
		if s.catIdx > 0 {
			s.catIdx--
			s.itemIdx = 0
		}
	case key.Matches(keyMsg, keys.Right):
		if s.catIdx < len(state.ListCategories)-1 {
			s.catIdx++
			s.itemIdx = 0
		}
	case key.Matches(keyMsg, keys.Up):
		if s.itemIdx > 0 {
			s.itemIdx--
		}
	case key.Matches(keyMsg, keys.Down):
		if s.itemIdx < len(items)-1 {
			s.itemIdx++
		}
	case key.Matches(keyMsg, keys.New):
		return s.showItemForm("item", "")
	case key.Matches(keyMsg, keys.Edit):
		if s.itemIdx < len(items) {
			return s.showItemForm("rename_item", items[s.itemIdx].ID)
		}
	case key.Matches(keyMsg, keys.Delete):
		if s.itemIdx < len(items) {
			s.store.RemoveListItem(s.category(), items[s.itemIdx].ID)
			if s.itemIdx > 0 {
				s.itemIdx--
			}
		}
	}
	return s, nil
}

func (s settingsModel) showSettingsForm() (settingsModel, tea.Cmd) {
	set := s.store.State().Settings
	*s.weekStart = strconv.Itoa(set.WeekStartsOn)
	*s.dayStart = strconv.Itoa(set.DayStartHour)
	*s.dayEnd = strconv.Itoa(set.DayEndHour)
	s.formType = "settings"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "1"),
					huh.NewOption("Sunday", "0"),
				).Value(s.weekStart),
			huh.NewInput().Title("Day starts (hour, 0-23)").Value(s.dayStart),
			huh.NewInput().Title("Day ends (hour, 0-23)").Value(s.dayEnd),
		).Title("Working window"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showItemForm(formType, id string) (settingsModel, tea.Cmd) {
	*s.itemName = ""
	s.formType = formType
	s.editingID = id
	title := "New " + strings.ToLower(categoryLabels[s.category()])
	if formType == "rename_item" {
		title = "Rename entry"
		if name, ok := state.ListItemName(s.items(), id); ok {
			*s.itemName = name
		}
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(s.itemName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "settings":
			patch := state.SettingsPatch{}
			if v, err := strconv.Atoi(*s.weekStart); err == nil {
				patch.WeekStartsOn = &v
			}
			if v, err := strconv.Atoi(strings.TrimSpace(*s.dayStart)); err == nil {
				patch.DayStartHour = &v
			}
			if v, err := strconv.Atoi(strings.TrimSpace(*s.dayEnd)); err == nil {
				patch.DayEndHour = &v
			}
			if err := s.store.UpdateSettings(patch); err != nil {
				return s, statusCmd(fmt.Sprintf("Save warning: %v", err), true)
			}
			return s, statusCmd("Settings saved", false)
		case "item":
			s.store.AddListItem(s.category(), *s.itemName)
			s.itemIdx = 0
		case "rename_item":
			s.store.RenameListItem(s.category(), s.editingID, *s.itemName)
		}
	}
	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	set := s.store.State().Settings
	weekLabel := "Monday"
	if set.WeekStartsOn == 0 {
		weekLabel = "Sunday"
	}
	window := fmt.Sprintf("%02d:00 – %02d:00", set.DayStartHour, set.DayEndHour)
	if set.DayEndHour <= set.DayStartHour {
		window += " (wraps past midnight)"
	}

	general := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Working window"),
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render("Week starts on"), highlightStyle.Render(weekLabel)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render("Daily window"), highlightStyle.Render(window)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render("Tag library"), mutedStyle.Render(strings.Join(set.TagLibrary, ", "))),
		"",
		mutedStyle.Render("  enter: edit"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, general, s.renderCatalogs(w))
}

func (s settingsModel) renderCatalogs(w int) string {
	var tabs []string
	for i, c := range state.ListCategories {
		label := categoryLabels[c]
		if i == s.catIdx {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), ""}

	items := s.items()
	if len(items) == 0 {
		rows = append(rows, mutedStyle.Render("  Empty. Press n to add an entry."))
	}
	for i, it := range items {
		cursor := "  "
		style := normalItemStyle
		if i == s.itemIdx {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+it.Name))
	}

	rows = append(rows, "", mutedStyle.Render("  ←/→: catalog  n: add  e: rename  d: remove"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
