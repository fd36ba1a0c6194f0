package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/state"
)

type tasksModel struct {
	store  *state.Store
	width  int
	height int

	cursor   int
	showDone bool

	formActive bool
	form       *huh.Form
	editingID  string // empty = creating

	// Form field pointers (survive value copies)
	formTitle    *string
	formNotes    *string
	formTags     *string
	formDate     *string
	formStart    *string
	formEstimate *string
}

func newTasksModel(s *state.Store) tasksModel {
	title, notes, tags, date, start, est := "", "", "", "", "", ""
	return tasksModel{
		store:        s,
		formTitle:    &title,
		formNotes:    &notes,
		formTags:     &tags,
		formDate:     &date,
		formStart:    &start,
		formEstimate: &est,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) visibleTasks() []state.Task {
	st := m.store.State()
	if m.showDone {
		return st.Tasks
	}
	var tasks []state.Task
	for _, t := range st.Tasks {
		if t.Status != state.StatusDone {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	tasks := m.visibleTasks()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm("")
	case key.Matches(keyMsg, keys.Edit):
		if m.cursor < len(tasks) {
			return m.showForm(tasks[m.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Toggle):
		if m.cursor < len(tasks) {
			m.store.ToggleTask(tasks[m.cursor].ID)
			if !m.showDone && m.cursor >= len(m.visibleTasks()) {
				m.cursor = max(0, m.cursor-1)
			}
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(tasks) {
			m.store.DeleteTask(tasks[m.cursor].ID)
			if m.cursor >= len(m.visibleTasks()) {
				m.cursor = max(0, m.cursor-1)
			}
			return m, statusCmd("Task deleted", false)
		}
	case key.Matches(keyMsg, keys.Start):
		if m.cursor < len(tasks) {
			m.store.StartTimer(tasks[m.cursor].ID, state.Classification{Kind: state.KindUseful})
			return m, statusCmd("Timer started", false)
		}
	case key.Matches(keyMsg, keys.Enter):
		// Auto-place the task into today's earliest free slot.
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			dur := 30
			if t.EstimateMin != nil {
				dur = *t.EstimateMin
			}
			b, ok, err := m.store.PlaceTask(t.ID, dates.Key(time.Now()), dur)
			if err != nil {
				return m, statusCmd(fmt.Sprintf("Save warning: %v", err), true)
			}
			if !ok {
				return m, statusCmd("No free window today", true)
			}
			return m, statusCmd(fmt.Sprintf("Placed at %s–%s", formatClock(b.StartMin), formatClock(b.EndMin)), false)
		}
	case keyMsg.String() == "a":
		m.showDone = !m.showDone
		m.cursor = 0
	}
	return m, nil
}

func (m tasksModel) showForm(id string) (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formNotes = ""
	*m.formTags = ""
	*m.formDate = ""
	*m.formStart = ""
	*m.formEstimate = ""
	m.editingID = id

	if id != "" {
		st := m.store.State()
		if t := st.TaskByID(id); t != nil {
			*m.formTitle = t.Title
			*m.formNotes = t.Notes
			*m.formTags = strings.Join(t.Tags, ", ")
			*m.formDate = t.PlannedDate
			*m.formStart = t.PlannedStart
			if t.EstimateMin != nil {
				*m.formEstimate = strconv.Itoa(*t.EstimateMin)
			}
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Notes").Value(m.formNotes),
			huh.NewInput().Title("Tags (comma-separated)").Value(m.formTags),
			huh.NewInput().Title("Planned date (YYYY-MM-DD, empty = someday)").Value(m.formDate),
			huh.NewInput().Title("Planned start (HH:MM, empty = flexible)").Value(m.formStart),
			huh.NewInput().Title("Estimate (minutes)").Value(m.formEstimate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		patch := state.TaskPatch{
			Title:        m.formTitle,
			Notes:        m.formNotes,
			Tags:         splitTags(*m.formTags),
			PlannedDate:  m.formDate,
			PlannedStart: m.formStart,
		}
		est, _ := strconv.Atoi(strings.TrimSpace(*m.formEstimate))
		patch.EstimateMin = &est

		if m.editingID == "" {
			m.store.CreateTask(*m.formTitle, patch)
			m.cursor = 0
			return m, statusCmd("Task created", false)
		}
		m.store.UpdateTask(m.editingID, patch)
		return m, statusCmd("Task updated", false)
	}
	return m, cmd
}

// splitTags parses a comma-separated tag string, dropping blanks.
func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	label := "Tasks"
	if m.showDone {
		label = "Tasks (including done)"
	}
	title := titleStyle.Render(label)

	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := "[ ]"
		if t.Status == state.StatusDone {
			mark = "[x]"
			style = doneStyle
		}
		line := style.Render(fmt.Sprintf("%s%s %s", cursor, mark, truncate(t.Title, 40)))
		var meta []string
		if t.PlannedDate != "" {
			when := t.PlannedDate
			if t.PlannedStart != "" {
				when += " " + t.PlannedStart
			}
			meta = append(meta, accentStyle.Render(when))
		}
		if t.EstimateMin != nil {
			meta = append(meta, mutedStyle.Render("~"+formatMinutes(*t.EstimateMin)))
		}
		if len(t.Tags) > 0 {
			meta = append(meta, mutedStyle.Render("["+strings.Join(t.Tags, " ")+"]"))
		}
		if len(meta) > 0 {
			line += "  " + strings.Join(meta, " ")
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  space: toggle  s: track  enter: auto-place  a: show done"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
