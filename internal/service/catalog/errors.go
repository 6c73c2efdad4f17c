package catalog

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog.service: invalid input data")

	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("catalog.service: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.service: service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
