package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/state"
)

// plannerModel is the horizon board: year, month, week and per-day plan
// task lists, with the weekly review attached to the anchor week.
type plannerModel struct {
	store  *state.Store
	width  int
	height int

	level      state.PlanLevel
	dayIdx     int // which weekday the day column shows
	cursor     int
	weekOffset int

	formActive bool
	form       *huh.Form
	formType   string // "plan", "rename", "review"
	editingID  string

	formTitle   *string
	formWins    *string
	formLessons *string
	formFocus   *string
	formNext    *string
}

func newPlannerModel(s *state.Store) plannerModel {
	title, wins, lessons, focus, next := "", "", "", "", ""
	return plannerModel{
		store:       s,
		level:       state.LevelWeek,
		formTitle:   &title,
		formWins:    &wins,
		formLessons: &lessons,
		formFocus:   &focus,
		formNext:    &next,
	}
}

func (m *plannerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// weekStart returns the anchor day of the week currently shown.
func (m plannerModel) weekStart() string {
	set := m.store.State().Settings
	anchor := dates.WeekStart(dates.Key(time.Now()), set.WeekStartsOn)
	return dates.AddDays(anchor, 7*m.weekOffset)
}

// loc is the plan location the cursor operates on.
func (m plannerModel) loc() state.PlanLocation {
	switch m.level {
	case state.LevelYear:
		return state.PlanLocation{Level: state.LevelYear}
	case state.LevelMonth:
		return state.PlanLocation{Level: state.LevelMonth}
	case state.LevelWeek:
		return state.PlanLocation{Level: state.LevelWeek, WeekStart: m.weekStart()}
	default:
		ws := m.weekStart()
		return state.PlanLocation{
			Level:     state.LevelDay,
			WeekStart: ws,
			Day:       dates.AddDays(ws, m.dayIdx),
		}
	}
}

func (m plannerModel) tasksAt(loc state.PlanLocation) []state.PlanTask {
	return m.store.State().PlanTasksAt(loc)
}

func (m plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	tasks := m.tasksAt(m.loc())
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Left):
		if m.level > state.LevelYear {
			m.level--
			m.cursor = 0
		}
	case key.Matches(keyMsg, keys.Right):
		if m.level < state.LevelDay {
			m.level++
			m.cursor = 0
		}
	case key.Matches(keyMsg, keys.New):
		return m.showPlanForm("plan", "")
	case key.Matches(keyMsg, keys.Edit):
		if m.cursor < len(tasks) {
			return m.showPlanForm("rename", tasks[m.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Toggle):
		if m.cursor < len(tasks) {
			m.store.TogglePlanTask(m.loc(), tasks[m.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(tasks) {
			m.store.DeletePlanTask(m.loc(), tasks[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case keyMsg.String() == "m":
		// Demote: push the plan task one horizon closer to a day.
		if m.cursor < len(tasks) && m.level < state.LevelDay {
			from := m.loc()
			m.level++
			m.store.MovePlanTask(from, tasks[m.cursor].ID, m.loc())
			m.cursor = 0
		}
	case keyMsg.String() == "[":
		if m.level == state.LevelDay && m.dayIdx > 0 {
			m.dayIdx--
			m.cursor = 0
		}
	case keyMsg.String() == "]":
		if m.level == state.LevelDay && m.dayIdx < 6 {
			m.dayIdx++
			m.cursor = 0
		}
	case keyMsg.String() == "<":
		m.weekOffset--
		m.cursor = 0
	case keyMsg.String() == ">":
		m.weekOffset++
		m.cursor = 0
	case keyMsg.String() == "r":
		return m.showReviewForm()
	}
	return m, nil
}

func (m plannerModel) showPlanForm(formType, id string) (plannerModel, tea.Cmd) {
	*m.formTitle = ""
	m.formType = formType
	m.editingID = id

	title := "Plan task"
	if formType == "rename" {
		title = "Rename plan task"
		for _, t := range m.tasksAt(m.loc()) {
			if t.ID == id {
				*m.formTitle = t.Title
			}
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m plannerModel) showReviewForm() (plannerModel, tea.Cmd) {
	*m.formWins = ""
	*m.formLessons = ""
	*m.formFocus = ""
	*m.formNext = ""
	if r := m.store.State().ReviewFor(m.weekStart()); r != nil {
		*m.formWins = r.Wins
		*m.formLessons = r.Lessons
		*m.formFocus = r.Focus
		*m.formNext = r.Next
	}
	m.formType = "review"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Wins").Value(m.formWins),
			huh.NewText().Title("Lessons").Value(m.formLessons),
			huh.NewText().Title("Focus").Value(m.formFocus),
			huh.NewText().Title("Next week").Value(m.formNext),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m plannerModel) updateForm(msg tea.Msg) (plannerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "plan":
			if strings.TrimSpace(*m.formTitle) != "" {
				m.store.AddPlanTask(m.loc(), *m.formTitle)
				m.cursor = 0
			}
		case "rename":
			m.store.RenamePlanTask(m.loc(), m.editingID, *m.formTitle)
		case "review":
			m.store.UpsertReview(m.weekStart(), state.ReviewPatch{
				Wins:    m.formWins,
				Lessons: m.formLessons,
				Focus:   m.formFocus,
				Next:    m.formNext,
			})
			return m, statusCmd("Review saved", false)
		}
	}
	return m, cmd
}

func (m plannerModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		label := "Plan"
		if m.formType == "review" {
			label = "Weekly review — " + m.weekStart()
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(label), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	ws := m.weekStart()
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Planner"),
		mutedStyle.Render("week of "+ws),
	)

	colW := max(16, (w-8)/4)
	cols := []string{
		m.renderColumn("Year", state.PlanLocation{Level: state.LevelYear}, state.LevelYear, colW),
		m.renderColumn("Month", state.PlanLocation{Level: state.LevelMonth}, state.LevelMonth, colW),
		m.renderColumn("Week", state.PlanLocation{Level: state.LevelWeek, WeekStart: ws}, state.LevelWeek, colW),
		m.renderDayColumn(ws, colW),
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	review := m.renderReview(w)
	hints := mutedStyle.Render("  ←/→: horizon  [/]: day  </>: week  n: add  e: rename  m: demote  space: toggle  d: delete  r: review")

	return lipgloss.JoinVertical(lipgloss.Left, header, board, review, hints)
}

func (m plannerModel) renderColumn(label string, loc state.PlanLocation, level state.PlanLevel, w int) string {
	style := panelStyle
	if m.level == level {
		style = activePanelStyle
	}

	rows := []string{titleStyle.Render(label)}
	tasks := m.tasksAt(loc)
	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("—"))
	}
	for i, t := range tasks {
		cursor := "  "
		itemStyle := normalItemStyle
		if m.level == level && i == m.cursor {
			cursor = "> "
			itemStyle = selectedItemStyle
		}
		mark := "· "
		if t.Done {
			mark = "✓ "
			itemStyle = doneStyle
		}
		rows = append(rows, itemStyle.Render(cursor+mark+truncate(t.Title, w-8)))
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (m plannerModel) renderDayColumn(ws string, w int) string {
	day := dates.AddDays(ws, m.dayIdx)
	loc := state.PlanLocation{Level: state.LevelDay, WeekStart: ws, Day: day}
	return m.renderColumn("Day "+day, loc, state.LevelDay, w)
}

func (m plannerModel) renderReview(w int) string {
	r := m.store.State().ReviewFor(m.weekStart())
	if r == nil {
		return footerStyle.Render("No review for this week yet — press r to write one")
	}
	line := func(label, text string) string {
		if text == "" {
			return ""
		}
		return accentStyle.Render(label+": ") + truncate(strings.ReplaceAll(text, "\n", " "), w-14)
	}
	var rows []string
	for _, s := range []string{
		line("Wins", r.Wins),
		line("Lessons", r.Lessons),
		line("Focus", r.Focus),
		line("Next", r.Next),
	} {
		if s != "" {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return footerStyle.Render("Review exists but is empty — press r to fill it in")
	}
	return panelStyle.Width(w).Render(titleStyle.Render("Weekly review") + "\n" + strings.Join(rows, "\n"))
}
