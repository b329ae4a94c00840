// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// LoginModel signs in with the account login and password. A successful
// [AuthResult] is picked up by [RootModel], which ends the sign-in flow;
// the vault itself stays locked until the passphrase is entered.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       credentialsForm
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		auth: auth,
		form: newCredentialsForm(
			labeledInput{label: "Логин", input: newFormInput("login", 64)},
			labeledInput{label: "Пароль", input: newSecretInput("password")},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AuthResult:
		m.submitting = false
		m.form.clearSecrets()
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
		}
		return m, nil

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
			login := strings.TrimSpace(m.form.value(0))
			password := m.form.value(1)
			if login == "" || password == "" {
				m.errMsg = "Логин и пароль обязательны"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, password)
		}
		return m, m.form.handleKey(msg)
	}
	return m, nil
}

func (m *LoginModel) View() string {
	body := m.form.view("Войти", m.submitting) + renderError(m.errMsg)
	return renderPage("ВХОД", body, "esc: назад │ tab: след. поле │ enter: войти")
}

func (m *LoginModel) cmdLogin(login, password string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		session, err := auth.Login(ctx, models.User{Login: login, Password: password})
		return AuthResult{Session: session, Err: err}
	}
}
