package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("create_booking: store not found")

	// ErrStoreInactive возвращается, когда магазин выключен
	ErrStoreInactive = errors.New("create_booking: store is inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена в этом магазине
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrConsultantUnavailable возвращается, когда консультант не найден,
	// выключен или работает в другом магазине
	ErrConsultantUnavailable = errors.New("create_booking: consultant unavailable")

	// ErrSlotNotAvailable возвращается, когда запрошенное время занято,
	// вне рабочего окна или не попадает в сетку слотов
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrConcurrencyConflict возвращается, когда конкурентное бронирование
	// не дало зафиксировать транзакцию. Клиент может повторить запрос.
	ErrConcurrencyConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
