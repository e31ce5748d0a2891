// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
)

var (
	errEmailTaken          = errors.New("email уже зарегистрирован")
	errCredentialsRequired = errors.New("Email и пароль обязательны")
	errPasswordTooShort    = errors.New("Пароль должен быть не короче 8 символов")
	errPasswordsDiffer     = errors.New("Пароли не совпадают")
)

var errorTexts = []struct {
	err  error
	text string
}{
	{service.ErrOffline, "Нет сети: действие доступно только онлайн"},
	{service.ErrWrongPassword, "Неверный email или пароль"},
	{service.ErrSessionExpired, "Сессия истекла, войдите снова"},
	{service.ErrNoSession, "Необходимо войти"},
	{service.ErrSyncInProgress, "Синхронизация уже идёт"},
	{service.ErrLocalDataUnavailable, "Не удалось очистить данные прошлого пользователя"},
	{service.ErrInvalidDataProvided, "Некорректные данные"},
	{service.ErrUnsupportedMediaType, "Поддерживаются только jpeg, png и webp"},
	{service.ErrPhotoTooLarge, "Фото больше 5 МБ"},
	{service.ErrNoPhoto, "У автомобиля нет фото"},
	{adapter.ErrConflict, "Конфликт: запись уже существует или закрыта"},
	{adapter.ErrNotFound, "Запись не найдена"},
	{adapter.ErrTransport, "Отсутствует сеть или Сервер недоступен"},
	{adapter.ErrUnavailable, "Отсутствует сеть или Сервер недоступен"},
}

func humanizeError(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range errorTexts {
		if errors.Is(err, e.err) {
			return e.text
		}
	}
	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
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
