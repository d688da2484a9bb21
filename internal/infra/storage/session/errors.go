package session

import "errors"

var (
	// ErrSessionNotFound сессия истекла или не создавалась
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrStore ошибка обращения к redis
	ErrStore = errors.New("session.store: redis error")

	// ErrDecode поврежденное значение сессии
	ErrDecode = errors.New("session.store: failed to decode session")
)
