package purge_history

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("purge_history: invalid input data")

	// ErrUnauthorized возвращается, когда у актора нет привилегии purge
	ErrUnauthorized = errors.New("purge_history: actor is not authorized")

	// ErrRetentionTooShort возвращается, когда запрошенный порог моложе
	// минимального срока хранения из конфигурации
	ErrRetentionTooShort = errors.New("purge_history: retention threshold is too short")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("purge_history: internal error")
)
