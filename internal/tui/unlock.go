package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
)

// UnlockModel asks for the vault passphrase. The passphrase is kept only in
// the session and is checked by the first sync: a remote blob that does not
// open means the passphrase is wrong.
type UnlockModel struct {
	ctx      context.Context
	services *service.ClientServices

	input      textinput.Model
	submitting bool
	errMsg     string
}

func NewUnlockModel(ctx context.Context, services *service.ClientServices) *UnlockModel {
	in := textinput.New()
	in.Placeholder = "фраза-пароль"
	in.CharLimit = 512
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'

	return &UnlockModel{
		ctx:      ctx,
		services: services,
		input:    in,
	}
}

func (m *UnlockModel) Init() tea.Cmd {
	m.input.SetValue("")
	m.input.Focus()
	m.submitting = false
	return textinput.Blink
}

func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case unlockDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.input.SetValue("")
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg { return NavigateTo{Page: pageTasks} }

	case tea.KeyMsg:
		switch {
		case msg.String() == "esc":
			return m, func() tea.Msg { return QuitRequested{} }
		case msg.String() == "enter":
			if m.submitting {
				return m, nil
			}
			pass := m.input.Value()
			if strings.TrimSpace(pass) == "" {
				m.errMsg = "Фраза-пароль обязательна"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdUnlock(pass)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *UnlockModel) View() string {
	var b strings.Builder
	b.WriteString("Хранилище зашифровано. Введите фразу-пароль.\n")
	b.WriteString("Она не покидает это устройство и не совпадает с паролем аккаунта.\n\n")
	b.WriteString("Фраза-пароль │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Разблокировка...]")
	} else {
		b.WriteString("\n[Разблокировать]")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("РАЗБЛОКИРОВКА", b.String(), "enter: подтвердить │ esc: выход")
}

// cmdUnlock stores the passphrase and runs the first sync. A wrong
// passphrase locks the session again. Being offline is not an error here:
// the local mirror stays usable and sync resumes later.
func (m *UnlockModel) cmdUnlock(pass string) tea.Cmd {
	ctx := m.ctx
	svc := m.services

	return func() tea.Msg {
		svc.Session.Unlock(pass)
		svc.SyncScheduler.Touch()

		err := svc.SyncCoordinator.Synchronize(ctx)
		switch {
		case err == nil:
			return unlockDoneMsg{}
		case errors.Is(err, service.ErrAuthentication):
			svc.Session.Lock()
			return unlockDoneMsg{err: err}
		default:
			// Offline, conflict or restricted: the tasks page shows the status.
			return unlockDoneMsg{}
		}
	}
}
