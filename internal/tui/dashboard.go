package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dayflow/internal/dates"
	"github.com/sadopc/dayflow/internal/derive"
	"github.com/sadopc/dayflow/internal/state"
)

// dashboardModel shows the live timer, today's plan and today's blocks.
// The store is synchronous and in-memory, so views read state directly
// instead of going through load commands.
type dashboardModel struct {
	store  *state.Store
	width  int
	height int

	now    time.Time
	cursor int
}

func newDashboardModel(s *state.Store) dashboardModel {
	return dashboardModel{store: s, now: time.Now()}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

// todayTasks returns tasks planned for today plus any still-open
// unplanned tasks, newest first.
func (d dashboardModel) todayTasks() []state.Task {
	today := dates.Key(d.now)
	st := d.store.State()
	var tasks []state.Task
	for _, t := range st.Tasks {
		if t.PlannedDate == today || (t.PlannedDate == "" && t.Status != state.StatusDone) {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		d.now = time.Time(msg)
		return d, nil

	case tea.KeyMsg:
		tasks := d.todayTasks()
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(tasks)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Start):
			taskID := ""
			if d.cursor < len(tasks) {
				taskID = tasks[d.cursor].ID
			}
			if err := d.store.StartTimer(taskID, state.Classification{Kind: state.KindUseful}); err != nil {
				return d, statusCmd(fmt.Sprintf("Save warning: %v", err), true)
			}
			return d, statusCmd("Timer started", false)
		case key.Matches(msg, keys.Stop):
			if d.store.State().ActiveTimer == nil {
				return d, nil
			}
			if _, err := d.store.StopTimer(""); err != nil {
				return d, statusCmd(fmt.Sprintf("Save warning: %v", err), true)
			}
			return d, statusCmd("Timer stopped", false)
		case key.Matches(msg, keys.Toggle):
			if d.cursor < len(tasks) {
				d.store.ToggleTask(tasks[d.cursor].ID)
			}
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTimerPanel(w),
		d.renderTodayPanel(w),
		d.renderBlocksPanel(w),
	)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	st := d.store.State()

	if timer := st.ActiveTimer; timer != nil {
		elapsed := d.now.Sub(time.UnixMilli(timer.StartedAt))
		if elapsed < 0 {
			elapsed = 0
		}
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatElapsed(elapsed))
		indicator := successStyle.Render("●  TRACKING")

		target := "(no task)"
		if t := st.TaskByID(timer.TaskID); t != nil {
			target = t.Title
		}
		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			highlightStyle.Render(target),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Width(w-6).Render("00:00:00"),
		mutedStyle.Render("■  STOPPED"),
		mutedStyle.Render("Press s to start tracking the selected task"),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	st := d.store.State()
	today := dates.Key(d.now)
	weekStart := dates.WeekStart(today, st.Settings.WeekStartsOn)
	stats := derive.StatsForWeek(st, weekStart, d.now)

	header := fmt.Sprintf("%s  %s tracked this week · %.0f%% of elapsed window",
		titleStyle.Render("Today "+today),
		highlightStyle.Render(formatMinutes(stats.Tracked)),
		stats.Coverage*100,
	)

	tasks := d.todayTasks()
	if len(tasks) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("Nothing planned. Press 2 to add tasks."),
		))
	}

	rows := []string{header}
	for i, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := "[ ]"
		if t.Status == state.StatusDone {
			mark = "[x]"
			style = doneStyle
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, truncate(t.Title, w-20))
		if t.PlannedStart != "" {
			line += accentStyle.Render("  @" + t.PlannedStart)
		}
		if t.EstimateMin != nil {
			line += mutedStyle.Render("  ~" + formatMinutes(*t.EstimateMin))
		}
		rows = append(rows, style.Render(line))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBlocksPanel(w int) string {
	st := d.store.State()
	blocks := st.BlocksOn(dates.Key(d.now))

	title := titleStyle.Render("Scheduled blocks")
	if len(blocks) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No hard-scheduled blocks today"),
		))
	}

	rows := []string{title}
	for _, b := range blocks {
		name := "(deleted)"
		if t := st.TaskByID(b.TaskID); t != nil {
			name = t.Title
		}
		lock := " "
		if b.Locked {
			lock = "🔒"
		}
		rows = append(rows, fmt.Sprintf("  %s–%s %s %s",
			formatClock(b.StartMin), formatClock(b.EndMin), lock, truncate(name, w-20)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
