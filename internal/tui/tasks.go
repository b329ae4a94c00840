package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const statusTickInterval = 2 * time.Second

// TasksModel is the main page: the task list of the current snapshot with
// the sync status on top.
type TasksModel struct {
	ctx      context.Context
	services *service.ClientServices

	cursor        int
	tickGen       int
	confirmDelete bool
	busy          bool
	errMsg        string
	notice        string
}

func NewTasksModel(ctx context.Context, services *service.ClientServices) *TasksModel {
	return &TasksModel{
		ctx:      ctx,
		services: services,
	}
}

func (m *TasksModel) Init() tea.Cmd {
	m.confirmDelete = false
	m.clampCursor()
	m.tickGen++
	return tickStatus(m.tickGen)
}

func tickStatus(gen int) tea.Cmd {
	return tea.Tick(statusTickInterval, func(time.Time) tea.Msg { return statusTickMsg{gen: gen} })
}

func (m *TasksModel) tasks() []models.Task {
	state := m.services.StateService.Current()
	if state == nil {
		return nil
	}
	return state.Tasks
}

func (m *TasksModel) clampCursor() {
	n := len(m.tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TasksModel) selected() (models.Task, bool) {
	tasks := m.tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *TasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.clampCursor()
		return m, tickStatus(m.tickGen)

	case mutationDoneMsg:
		m.busy = false
		m.setResult(msg.notice, msg.err)
		m.clampCursor()
		return m, nil

	case syncDoneMsg:
		m.busy = false
		m.setResult(msg.notice, msg.err)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *TasksModel) setResult(notice string, err error) {
	if err != nil {
		m.errMsg = humanizeError(err)
		m.notice = ""
		return
	}
	m.errMsg = ""
	m.notice = notice
}

func (m *TasksModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirmDelete = false
			if task, ok := m.selected(); ok {
				m.busy = true
				return m, m.cmdDelete(task.ID)
			}
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirmDelete = false
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(m.tasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.newItem):
		return m, func() tea.Msg { return NavigateTo{Page: pageTaskForm} }
	case key.Matches(msg, keys.edit), key.Matches(msg, keys.enter):
		if task, ok := m.selected(); ok {
			return m, func() tea.Msg { return NavigateTo{Page: pageTaskForm, Payload: editTask{task: task}} }
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
	case key.Matches(msg, keys.done):
		if task, ok := m.selected(); ok && task.Status == models.TaskOpen {
			m.busy = true
			return m, m.cmdDone(task.ID)
		}
	case key.Matches(msg, keys.sync):
		m.busy = true
		m.notice = ""
		return m, m.cmdSync()
	case key.Matches(msg, keys.templates):
		return m, func() tea.Msg { return NavigateTo{Page: pageTemplates} }
	case key.Matches(msg, keys.history):
		return m, func() tea.Msg { return NavigateTo{Page: pageHistory} }
	case key.Matches(msg, keys.devices):
		return m, func() tea.Msg { return NavigateTo{Page: pageDevices} }
	case key.Matches(msg, keys.export):
		return m, func() tea.Msg { return NavigateTo{Page: pageExport} }
	case key.Matches(msg, keys.conflict):
		if m.services.Session.ConflictPending() {
			return m, func() tea.Msg { return NavigateTo{Page: pageConflict} }
		}
	case key.Matches(msg, keys.lock):
		m.services.Session.Lock()
		return m, func() tea.Msg { return VaultLocked{} }
	case key.Matches(msg, keys.logout):
		return m, func() tea.Msg { return LogoutRequested{} }
	case key.Matches(msg, keys.quit):
		return m, func() tea.Msg { return QuitRequested{} }
	}

	return m, nil
}

func (m *TasksModel) View() string {
	var b strings.Builder

	b.WriteString(statusLine(m.services.Session))
	b.WriteString("\n")

	if state := m.services.StateService.Current(); state != nil {
		b.WriteString(fmt.Sprintf("XP: %d │ Уровень: %d │ Серия: %d", state.Stats.XP, state.Stats.Level, state.Stats.Streak))
		if state.Stats.Rank != "" {
			b.WriteString(" │ " + state.Stats.Rank)
		}
		b.WriteString("\n")
	}
	if m.services.Session.ConflictPending() {
		b.WriteString(warnStyle.Render("Найден конфликт синхронизации, нажмите c"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tasks := m.tasks()
	if len(tasks) == 0 {
		b.WriteString("Задач пока нет. Нажмите n, чтобы добавить.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-3s │ %-40s │ %-12s │ %-3s │ %s\n", "", "Задача", "Раздел", "P", "Срок"))
		b.WriteString("  ────┼──────────────────────────────────────────┼──────────────┼─────┼──────────────────\n")
		for i, t := range tasks {
			row := fmt.Sprintf("%s %-3s │ %-40s │ %-12s │ %-3d │ %s",
				cursorMark(i == m.cursor),
				taskMark(t.Status),
				fitText(t.Title, 40),
				fitText(t.Section, 12),
				t.Priority,
				dueText(t.DueAt),
			)
			if t.Status == models.TaskDone {
				row = doneStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if m.confirmDelete {
		if task, ok := m.selected(); ok {
			b.WriteString("\n")
			b.WriteString(overlayStyle.Render(fmt.Sprintf("Удалить «%s»? y: да │ n: нет", fitText(task.Title, 40))))
		}
	}
	if m.busy {
		b.WriteString("\n[Выполняется...]")
	}
	b.WriteString(renderError(m.errMsg))
	b.WriteString(renderNotice(m.notice))

	return renderPage("LIFE OS: ЗАДАЧИ", strings.TrimRight(b.String(), "\n"),
		"n: новая │ e: изменить │ x: выполнено │ d: удалить │ s: синхр. │ t: шаблоны │ h: история │ D: устройства │ E: экспорт │ L: блокировка │ o: выйти из аккаунта │ q: выход")
}

func taskMark(s models.TaskStatus) string {
	switch s {
	case models.TaskDone:
		return "[x]"
	case models.TaskMissed:
		return "[!]"
	default:
		return "[ ]"
	}
}

func dueText(dueAt *int64) string {
	if dueAt == nil {
		return "-"
	}
	return formatMillis(*dueAt)
}

func (m *TasksModel) cmdDone(id string) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.MarkDone(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: fmt.Sprintf("Выполнено: %s (+%d XP)", task.Title, task.XP)}
	}
}

func (m *TasksModel) cmdDelete(id string) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		if err := tasks.DeleteTask(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Задача удалена"}
	}
}

func (m *TasksModel) cmdSync() tea.Cmd {
	ctx, coordinator := m.ctx, m.services.SyncCoordinator
	return func() tea.Msg {
		if err := coordinator.PushNow(ctx); err != nil {
			return syncDoneMsg{err: err}
		}
		if coordinator.Conflict() != nil {
			return syncDoneMsg{notice: "Обнаружен конфликт"}
		}
		return syncDoneMsg{notice: "Синхронизировано"}
	}
}
