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

// HistoryModel lists the server-side history snapshots. A snapshot can be
// restored over the local state, and R replaces local with the current
// remote vault (the way out of restricted mode).
type HistoryModel struct {
	ctx      context.Context
	services *service.ClientServices
	limit    int

	versions []models.VersionInfo
	cursor   int
	loading  bool
	confirm  bool
	errMsg   string
	notice   string
}

func NewHistoryModel(ctx context.Context, services *service.ClientServices, limit int) *HistoryModel {
	return &HistoryModel{ctx: ctx, services: services, limit: limit}
}

func (m *HistoryModel) Init() tea.Cmd {
	m.cursor = 0
	m.confirm = false
	m.errMsg = ""
	m.notice = ""
	m.loading = true
	return m.cmdLoad()
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case versionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.versions = msg.versions
		if m.cursor >= len(m.versions) {
			m.cursor = max(len(m.versions)-1, 0)
		}
		return m, nil

	case syncDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.notice = ""
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageTasks, Payload: msg} }

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		if m.loading {
			return m, nil
		}

		if m.confirm {
			switch {
			case key.Matches(msg, keys.yes):
				m.confirm = false
				if m.cursor < len(m.versions) {
					m.loading = true
					return m, m.cmdRestore(m.versions[m.cursor])
				}
			case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
				m.confirm = false
			}
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
			if m.cursor < len(m.versions)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.enter):
			if m.services.Session.Restricted() {
				m.errMsg = humanizeError(service.ErrRestricted)
				return m, nil
			}
			if m.cursor < len(m.versions) {
				m.confirm = true
			}
		case key.Matches(msg, keys.recover):
			m.loading = true
			return m, m.cmdRecover()
		case key.Matches(msg, keys.sync):
			m.loading = true
			return m, m.cmdLoad()
		}
	}
	return m, nil
}

func (m *HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(statusLine(m.services.Session))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.versions) == 0:
		b.WriteString("Загрузка...\n")
	case len(m.versions) == 0:
		b.WriteString("На сервере нет снимков.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-19s │ %-19s │ %s\n", "Снимок", "Изменено", "Версия"))
		b.WriteString("  ────────────────────┼─────────────────────┼──────────\n")
		for i, v := range m.versions {
			b.WriteString(fmt.Sprintf("%s %-19s │ %-19s │ %s\n",
				cursorMark(i == m.cursor),
				formatTime(v.CreatedAt),
				formatMillis(v.Meta.UpdatedAt),
				valueOrNA(v.AppVersion),
			))
		}
	}

	if m.confirm && m.cursor < len(m.versions) {
		b.WriteString("\n")
		b.WriteString(overlayStyle.Render(fmt.Sprintf("Восстановить снимок от %s? y: да │ n: нет", formatTime(m.versions[m.cursor].CreatedAt))))
	}
	b.WriteString(renderError(m.errMsg))
	b.WriteString(renderNotice(m.notice))

	return renderPage("ИСТОРИЯ ВЕРСИЙ", strings.TrimRight(b.String(), "\n"),
		"enter: восстановить │ R: взять текущую с сервера │ s: обновить │ esc: назад")
}

func (m *HistoryModel) cmdLoad() tea.Cmd {
	ctx, svc, limit := m.ctx, m.services.SyncService, m.limit
	return func() tea.Msg {
		versions, err := svc.ListVersions(ctx, limit)
		return versionsLoadedMsg{versions: versions, err: err}
	}
}

func (m *HistoryModel) cmdRestore(v models.VersionInfo) tea.Cmd {
	ctx, coordinator := m.ctx, m.services.SyncCoordinator
	return func() tea.Msg {
		if err := coordinator.RestoreVersion(ctx, v.CreatedAt); err != nil {
			return syncDoneMsg{err: err}
		}
		return syncDoneMsg{notice: "Восстановлен снимок от " + formatTime(v.CreatedAt)}
	}
}

func (m *HistoryModel) cmdRecover() tea.Cmd {
	ctx, coordinator := m.ctx, m.services.SyncCoordinator
	return func() tea.Msg {
		if err := coordinator.RecoverFromRemote(ctx); err != nil {
			return syncDoneMsg{err: err}
		}
		return syncDoneMsg{notice: "Состояние восстановлено с сервера"}
	}
}
