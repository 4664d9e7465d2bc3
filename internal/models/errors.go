package models

import "errors"

var (
	// ErrUserNotFound — пользователь отсутствует в хранилище или у провайдера.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuotaExceeded — бесплатный пользователь исчерпал лимит задач.
	ErrQuotaExceeded = errors.New("free tier quota exceeded")
	// ErrProviderUnavailable — провайдер идентификации недоступен или ответил ошибкой.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrMalformedRole — провайдер вернул роль, которую нельзя интерпретировать.
	ErrMalformedRole = errors.New("malformed role metadata")
)
