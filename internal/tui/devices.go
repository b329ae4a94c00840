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

// DevicesModel lists the devices of the account and revokes them.
type DevicesModel struct {
	ctx      context.Context
	services *service.ClientServices

	devices []models.Device
	current string
	cursor  int
	loading bool
	confirm bool
	errMsg  string
	notice  string
}

func NewDevicesModel(ctx context.Context, services *service.ClientServices) *DevicesModel {
	return &DevicesModel{ctx: ctx, services: services}
}

func (m *DevicesModel) Init() tea.Cmd {
	m.confirm = false
	m.errMsg = ""
	m.notice = ""
	m.loading = true
	return m.cmdLoad()
}

func (m *DevicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case devicesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.devices = msg.devices
		m.current = msg.current
		if m.cursor >= len(m.devices) {
			m.cursor = max(len(m.devices)-1, 0)
		}
		return m, nil

	case mutationDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		m.loading = true
		return m, m.cmdLoad()

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()
		if m.loading {
			return m, nil
		}

		if m.confirm {
			switch {
			case key.Matches(msg, keys.yes):
				m.confirm = false
				if m.cursor < len(m.devices) {
					m.loading = true
					return m, m.cmdRevoke(m.devices[m.cursor])
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
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.revoke):
			if m.cursor < len(m.devices) && !m.devices[m.cursor].Revoked {
				m.confirm = true
			}
		case key.Matches(msg, keys.sync):
			m.loading = true
			return m, m.cmdLoad()
		}
	}
	return m, nil
}

func (m *DevicesModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.devices) == 0:
		b.WriteString("Загрузка...\n")
	case len(m.devices) == 0:
		b.WriteString("Устройств нет.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-22s │ %-10s │ %-19s │ %s\n", "Устройство", "Платформа", "Активность", "Статус"))
		b.WriteString("  ───────────────────────┼────────────┼─────────────────────┼──────────\n")
		for i, d := range m.devices {
			label := d.Label
			if label == "" {
				label = d.DeviceID
			}
			if d.DeviceID == m.current {
				label += " (это)"
			}

			status := okStyle.Render("активно")
			if d.Revoked {
				status = errorStyle.Render("отозвано")
			}

			b.WriteString(fmt.Sprintf("%s %-22s │ %-10s │ %-19s │ %s\n",
				cursorMark(i == m.cursor),
				fitText(label, 22),
				fitText(valueOrNA(d.Platform), 10),
				formatTime(d.LastSeen),
				status,
			))
		}
	}

	if m.confirm && m.cursor < len(m.devices) {
		d := m.devices[m.cursor]
		text := fmt.Sprintf("Отозвать %s? y: да │ n: нет", fitText(valueOrNA(d.Label), 30))
		if d.DeviceID == m.current {
			text = "Отозвать ЭТО устройство? Синхронизация на нём прекратится. y: да │ n: нет"
		}
		b.WriteString("\n")
		b.WriteString(overlayStyle.Render(text))
	}
	b.WriteString(renderError(m.errMsg))
	b.WriteString(renderNotice(m.notice))

	return renderPage("УСТРОЙСТВА", strings.TrimRight(b.String(), "\n"), "r: отозвать │ s: обновить │ esc: назад")
}

func (m *DevicesModel) cmdLoad() tea.Cmd {
	ctx, devices := m.ctx, m.services.DeviceService
	current := m.services.Session.DeviceID()
	return func() tea.Msg {
		list, err := devices.List(ctx)
		return devicesLoadedMsg{devices: list, current: current, err: err}
	}
}

func (m *DevicesModel) cmdRevoke(d models.Device) tea.Cmd {
	ctx, devices := m.ctx, m.services.DeviceService
	return func() tea.Msg {
		if err := devices.Revoke(ctx, d.DeviceID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Устройство отозвано: " + valueOrNA(d.Label)}
	}
}
