package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// TemplatesModel lists the task templates. enter creates a task from the
// selected template.
type TemplatesModel struct {
	ctx      context.Context
	services *service.ClientServices

	cursor int
	busy   bool
	errMsg string
	notice string
}

func NewTemplatesModel(ctx context.Context, services *service.ClientServices) *TemplatesModel {
	return &TemplatesModel{ctx: ctx, services: services}
}

func (m *TemplatesModel) Init() tea.Cmd {
	m.errMsg = ""
	m.notice = ""
	return nil
}

func (m *TemplatesModel) templates() []models.Template {
	state := m.services.StateService.Current()
	if state == nil {
		return nil
	}
	return state.Templates
}

func (m *TemplatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.notice = ""
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		if n := len(m.templates()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		if m.busy {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageTasks} }
		case key.Matches(msg, keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.down):
			if m.cursor < len(m.templates())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.newItem):
			return m, func() tea.Msg { return NavigateTo{Page: pageTaskForm, Payload: newTemplate{}} }
		case key.Matches(msg, keys.enter):
			tpls := m.templates()
			if m.cursor < len(tpls) {
				m.busy = true
				return m, m.cmdCreateTask(tpls[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m *TemplatesModel) View() string {
	var b strings.Builder

	tpls := m.templates()
	if len(tpls) == 0 {
		b.WriteString("Шаблонов нет. Нажмите n, чтобы создать.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-24s │ %s\n", "Шаблон", "Задача"))
		b.WriteString("  ─────────────────────────┼──────────────────────────────────────\n")
		for i, t := range tpls {
			b.WriteString(fmt.Sprintf("%s %-24s │ %s\n", cursorMark(i == m.cursor), fitText(t.Name, 24), fitText(t.Task.Title, 40)))
		}
	}
	b.WriteString(renderError(m.errMsg))
	b.WriteString(renderNotice(m.notice))

	return renderPage("ШАБЛОНЫ", strings.TrimRight(b.String(), "\n"), "enter: создать задачу │ n: новый шаблон │ esc: назад")
}

func (m *TemplatesModel) cmdCreateTask(templateID string) tea.Cmd {
	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.CreateTaskFromTemplate(ctx, templateID)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Создана задача: " + task.Title}
	}
}
