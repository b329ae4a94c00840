package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
)

type fileAction struct {
	title string
	// suffix builds the default file name: lifeos-<date><suffix>.
	suffix string
	write  func(ctx context.Context, svc service.ExportService) ([]byte, error)
}

var fileActions = []fileAction{
	{
		title:  "Экспорт (зашифрованный, с подписью)",
		suffix: ".export.json",
		write: func(ctx context.Context, svc service.ExportService) ([]byte, error) {
			return svc.Export(ctx)
		},
	},
	{
		title:  "Аварийный пакет",
		suffix: ".emergency.json",
		write: func(ctx context.Context, svc service.ExportService) ([]byte, error) {
			return svc.EmergencyBundle(ctx)
		},
	},
	{
		title:  "Аналитика (CSV)",
		suffix: ".analytics.csv",
		write: func(ctx context.Context, svc service.ExportService) ([]byte, error) {
			return svc.AnalyticsCSV(ctx)
		},
	},
	{title: "Импорт из файла"},
}

// ExportModel writes export files and imports them back.
type ExportModel struct {
	ctx      context.Context
	services *service.ClientServices

	cursor  int
	path    textinput.Model
	editing bool
	busy    bool
	errMsg  string
	notice  string
}

func NewExportModel(ctx context.Context, services *service.ClientServices) *ExportModel {
	in := textinput.New()
	in.Placeholder = "путь к файлу"
	in.CharLimit = 1024
	in.Width = 50

	return &ExportModel{ctx: ctx, services: services, path: in}
}

func (m *ExportModel) Init() tea.Cmd {
	m.editing = false
	m.errMsg = ""
	m.notice = ""
	m.path.Blur()
	return nil
}

func (m *ExportModel) isImport() bool {
	return fileActions[m.cursor].write == nil
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.notice = ""
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		return m, nil

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		if m.busy {
			return m, nil
		}

		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.path.Blur()
				return m, nil
			case "enter":
				path := strings.TrimSpace(m.path.Value())
				if path == "" {
					m.errMsg = "Укажите путь к файлу"
					return m, nil
				}
				m.editing = false
				m.path.Blur()
				m.busy = true
				m.errMsg = ""
				return m, m.cmdRun(fileActions[m.cursor], path)
			}
			var cmd tea.Cmd
			m.path, cmd = m.path.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: pageTasks} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(fileActions)-1 {
				m.cursor++
			}
		case "enter":
			m.editing = true
			if m.isImport() {
				m.path.SetValue("")
			} else {
				m.path.SetValue(defaultFileName(fileActions[m.cursor].suffix, time.Now()))
			}
			m.path.CursorEnd()
			m.path.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *ExportModel) View() string {
	var b strings.Builder
	for i, a := range fileActions {
		b.WriteString(fmt.Sprintf("%s %d │ %s\n", cursorMark(i == m.cursor), i+1, a.title))
	}

	if m.editing {
		b.WriteString("\nФайл │ [")
		b.WriteString(m.path.View())
		b.WriteString("]\n")
	}
	if m.busy {
		b.WriteString("\n[Выполняется...]")
	}
	b.WriteString(renderError(m.errMsg))
	b.WriteString(renderNotice(m.notice))

	hotKeys := "enter: выбрать │ ↑/↓: навигация │ esc: назад"
	if m.editing {
		hotKeys = "enter: подтвердить │ esc: отмена"
	}
	return renderPage("ЭКСПОРТ И ИМПОРТ", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func defaultFileName(suffix string, now time.Time) string {
	return "lifeos-" + now.Format("20060102-150405") + suffix
}

func (m *ExportModel) cmdRun(action fileAction, path string) tea.Cmd {
	ctx, svc := m.ctx, m.services.ExportService

	if action.write == nil {
		return func() tea.Msg {
			data, err := os.ReadFile(path)
			if err != nil {
				return fileDoneMsg{err: err}
			}
			state, err := svc.Import(ctx, data)
			if err != nil {
				return fileDoneMsg{err: err}
			}
			return fileDoneMsg{notice: fmt.Sprintf("Импортировано: %s", plural(len(state.Tasks), "задача", "задачи", "задач"))}
		}
	}

	return func() tea.Msg {
		data, err := action.write(ctx, svc)
		if err != nil {
			return fileDoneMsg{err: err}
		}
		if err = os.WriteFile(path, data, 0o600); err != nil {
			return fileDoneMsg{err: err}
		}
		return fileDoneMsg{notice: "Сохранено в " + path}
	}
}
