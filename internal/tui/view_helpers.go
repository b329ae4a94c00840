package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: выход"))

	return b.String()
}

// fitText cuts v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// formatMillis renders Unix milliseconds in local time. Zero is "-".
func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

var statusTitles = map[models.SyncStatus]string{
	models.StatusReady:    "готово",
	models.StatusSyncing:  "синхронизация...",
	models.StatusSynced:   "синхронизировано",
	models.StatusOffline:  "нет сети",
	models.StatusError:    "ошибка",
	models.StatusConflict: "КОНФЛИКТ",
	models.StatusLocked:   "заблокировано",
}

// statusLine is the header shown above every main page.
func statusLine(sess *service.SyncSession) string {
	status := sess.Status()
	title, ok := statusTitles[status]
	if !ok {
		title = string(status)
	}

	var text string
	switch status {
	case models.StatusConflict, models.StatusError:
		text = warnStyle.Render("Синхронизация: " + title)
	case models.StatusSynced:
		text = okStyle.Render("Синхронизация: " + title)
	default:
		text = "Синхронизация: " + title
	}

	if sess.Restricted() {
		text += " │ " + errorStyle.Render("ОГРАНИЧЕННЫЙ РЕЖИМ: журнал повреждён")
	}
	return text
}

func renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + errorStyle.Render("Ошибка: "+msg)
}

func renderNotice(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + okStyle.Render(msg)
}

func cursorMark(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func plural(n int, one, few, many string) string {
	n10, n100 := n%10, n%100
	switch {
	case n10 == 1 && n100 != 11:
		return fmt.Sprintf("%d %s", n, one)
	case n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14):
		return fmt.Sprintf("%d %s", n, few)
	default:
		return fmt.Sprintf("%d %s", n, many)
	}
}
