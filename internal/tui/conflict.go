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

// ConflictModel shows both sides of a pending conflict and lets the user
// pick one. Nothing is replaced until a side is picked.
type ConflictModel struct {
	ctx      context.Context
	services *service.ClientServices

	busy   bool
	errMsg string
}

func NewConflictModel(ctx context.Context, services *service.ClientServices) *ConflictModel {
	return &ConflictModel{ctx: ctx, services: services}
}

func (m *ConflictModel) Init() tea.Cmd {
	m.errMsg = ""
	return nil
}

func (m *ConflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageTasks, Payload: msg} }

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		if m.busy {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageTasks} }
		case key.Matches(msg, keys.keepLocal):
			m.busy = true
			return m, m.cmdResolve(m.services.SyncCoordinator.KeepLocal, "Оставлена локальная версия")
		case key.Matches(msg, keys.useRemote):
			m.busy = true
			return m, m.cmdResolve(m.services.SyncCoordinator.UseRemote, "Загружена версия с сервера")
		}
	}
	return m, nil
}

func (m *ConflictModel) View() string {
	conflict := m.services.SyncCoordinator.Conflict()
	if conflict == nil {
		return renderPage("КОНФЛИКТ", "Конфликта нет.", "esc: назад")
	}

	p := conflict.Preview
	var b strings.Builder
	b.WriteString("Обе стороны изменились после последней синхронизации.\n\n")
	b.WriteString(fmt.Sprintf("%-18s │ %-20s │ %s\n", "", "Это устройство", "Сервер"))
	b.WriteString("───────────────────┼──────────────────────┼─────────────────────\n")
	b.WriteString(fmt.Sprintf("%-18s │ %-20s │ %s\n", "Изменено", formatMillis(p.LocalUpdatedAt), formatMillis(p.RemoteUpdatedAt)))
	b.WriteString(fmt.Sprintf("%-18s │ %-20d │ %d\n", "Задач", p.LocalTasks, p.RemoteTasks))
	b.WriteString(fmt.Sprintf("%-18s │ %-20d │ %d\n", "Событий аудита", p.LocalEvents, p.RemoteEvents))

	if p.DoneCountDiff != 0 {
		b.WriteString(fmt.Sprintf("\nРазница выполненных: %+d\n", p.DoneCountDiff))
	}
	if len(p.TaskTitleDiff) > 0 {
		b.WriteString("\nРазличаются задачи:\n")
		for _, title := range p.TaskTitleDiff {
			b.WriteString("  • " + fitText(title, 60) + "\n")
		}
	}

	switch conflict.Newest {
	case models.ActionUseLocal:
		b.WriteString("\nНовее: это устройство\n")
	case models.ActionUseRemote:
		b.WriteString("\nНовее: сервер\n")
	}

	if m.busy {
		b.WriteString("\n[Выполняется...]")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("КОНФЛИКТ СИНХРОНИЗАЦИИ", strings.TrimRight(b.String(), "\n"),
		"1: оставить локальную │ 2: взять с сервера │ esc: решить позже")
}

func (m *ConflictModel) cmdResolve(resolve func(context.Context) error, notice string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := resolve(ctx); err != nil {
			return syncDoneMsg{err: err}
		}
		return syncDoneMsg{notice: notice}
	}
}
