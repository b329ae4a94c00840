// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
)

// ErrUserQuit is returned by the flows when the user leaves the program.
var ErrUserQuit = errors.New("вышел из программы")

var humanMessages = []struct {
	target error
	msg    string
}{
	{service.ErrAuthentication, "Неверная фраза-пароль или данные повреждены"},
	{service.ErrVaultLocked, "Хранилище заблокировано"},
	{service.ErrConflictPending, "Есть неразрешённый конфликт синхронизации"},
	{service.ErrRestricted, "Ограниченный режим: журнал аудита повреждён"},
	{service.ErrChainBroken, "Цепочка аудита не прошла проверку"},
	{service.ErrSignatureMismatch, "Подпись файла экспорта не совпадает"},
	{service.ErrInvalidExport, "Некорректный файл экспорта"},
	{service.ErrNoRemoteVault, "На сервере нет хранилища"},
	{service.ErrNoConflict, "Конфликта нет"},
	{service.ErrDeviceRevoked, "Это устройство отозвано"},
	{service.ErrWrongPassword, "Неверный логин или пароль"},
	{service.ErrNotLoggedIn, "Требуется вход"},
	{service.ErrNetwork, "Отсутствует сеть или Сервер недоступен"},
	{service.ErrEmptyTitle, "Название обязательно"},
	{service.ErrTaskNotFound, "Задача не найдена"},
	{service.ErrTemplateNotFound, "Шаблон не найден"},
	{service.ErrStaleSnapshot, "Данные изменились во время операции, повторите"},
}

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range humanMessages {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
