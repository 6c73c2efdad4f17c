package analytics

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("analytics.service: invalid input data")

	// ErrUnauthorized возвращается, когда актор не видит магазин
	ErrUnauthorized = errors.New("analytics.service: actor is not authorized")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("analytics.service: internal error")
)
