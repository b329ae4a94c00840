package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label string
	hint  string
	// msg is what choosing the item sends.
	msg tea.Msg
}

// MenuModel is the sign-in screen shown when no session was saved.
type MenuModel struct {
	items  []menuItem
	idx    int
	notice string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{label: "Войти", hint: "аккаунт уже есть", msg: NavigateTo{Page: pageLogin}},
			{label: "Зарегистрироваться", hint: "новый аккаунт на сервере", msg: NavigateTo{Page: pageRegister}},
			{label: "Выйти", msg: QuitRequested{}},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		if msg.Username != "" {
			m.notice = "Пользователь " + msg.Username + " зарегистрирован, теперь войдите"
		} else {
			m.notice = "Регистрация прошла успешно"
		}
		m.idx = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.items)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.quit):
			return m, func() tea.Msg { return QuitRequested{} }
		case key.Matches(msg, keys.enter):
			return m, m.choose(m.idx)
		default:
			// 1..9 выбирают пункт сразу
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(m.items) {
				m.idx = int(s[0] - '1')
				return m, m.choose(m.idx)
			}
		}
	}
	return m, nil
}

func (m *MenuModel) choose(i int) tea.Cmd {
	chosen := m.items[i].msg
	m.notice = ""
	return func() tea.Msg { return chosen }
}

func (m *MenuModel) View() string {
	var b strings.Builder

	labelWidth := 0
	for _, item := range m.items {
		labelWidth = max(labelWidth, lipgloss.Width(item.label))
	}

	b.WriteString("Задачи, шаблоны и прогресс хранятся зашифрованными.\n")
	b.WriteString("Сервер видит только шифротекст.\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%s %d. %-*s", cursorMark(i == m.idx), i+1, labelWidth, item.label)
		if item.hint != "" {
			line += "  " + helpStyle.Render(item.hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(renderNotice(m.notice))

	return renderPage("LIFE OS", strings.TrimRight(b.String(), "\n"), "enter/1-3: выбрать │ ↑/↓: навигация │ v: версия │ q: выход")
}
