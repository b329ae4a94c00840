// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

// renderBuildInfoWindow is toggled with "v" on the sign-in menu.
func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Приложение", "Life OS (терминальный клиент)"},
		{"Версия", valueOrNA(info.BuildVersion())},
		{"Дата сборки", valueOrNA(info.BuildDate())},
		{"Коммит", valueOrNA(info.BuildCommit())},
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-12s %s\n", row[0]+":", row[1])
	}

	return renderPage("О ПРОГРАММЕ", strings.TrimRight(b.String(), "\n"), "esc/v: назад")
}

func valueOrNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.NotAvailable
	}
	return v
}
