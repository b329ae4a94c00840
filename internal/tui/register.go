package tui

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// minPasswordLen only guards against typos in the sign-up form; the server
// has its own checks.
const minPasswordLen = 8

// RegisterModel creates an account. After a successful registration it
// returns to the menu with a [RegisterSuccessNotice]; the user then signs
// in as usual.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       credentialsForm
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newCredentialsForm(
			labeledInput{label: "Имя", input: newFormInput("необязательно", 64)},
			labeledInput{label: "Логин", input: newFormInput("login", 64)},
			labeledInput{label: "Пароль", input: newSecretInput("password")},
			labeledInput{label: "Повтор пароля", input: newSecretInput("repeat password")},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterResult:
		m.submitting = false
		if msg.Err != nil {
			m.form.clearSecrets()
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		m.form.clear()
		return m, func() tea.Msg {
			return NavigateTo{Page: pageMenu, Payload: RegisterSuccessNotice{Username: msg.Username}}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			m.form.clear()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }

		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if m.errMsg = validateRegistration(m.form.value(1), m.form.value(2), m.form.value(3)); m.errMsg != "" {
				return m, nil
			}
			m.submitting = true
			return m, m.cmdRegister(strings.TrimSpace(m.form.value(0)), strings.TrimSpace(m.form.value(1)), m.form.value(2))
		}
		return m, m.form.handleKey(msg)
	}
	return m, nil
}

// validateRegistration returns the message to show, "" when the form is fine.
func validateRegistration(login, password, repeat string) string {
	switch {
	case strings.TrimSpace(login) == "" || password == "":
		return "Логин и пароль обязательны"
	case utf8.RuneCountInString(password) < minPasswordLen:
		return "Пароль должен быть не короче 8 символов"
	case password != repeat:
		return "Пароли не совпадают"
	}
	return ""
}

func (m *RegisterModel) View() string {
	body := m.form.view("Зарегистрироваться", m.submitting) + renderError(m.errMsg)
	return renderPage("РЕГИСТРАЦИЯ", body, "esc: назад │ tab/↑/↓: поле │ enter: подтвердить")
}

func (m *RegisterModel) cmdRegister(name, login, password string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		_, err := auth.Register(ctx, models.User{Name: name, Login: login, Password: password})
		return RegisterResult{Username: login, Err: err}
	}
}
