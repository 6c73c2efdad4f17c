package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrUnauthorized возвращается, когда бронирование принадлежит другому клиенту
	ErrUnauthorized = errors.New("reschedule_booking: booking belongs to another customer")

	// ErrNotReschedulable возвращается, когда бронирование уже не в статусе SCHEDULED
	ErrNotReschedulable = errors.New("reschedule_booking: only scheduled bookings can be rescheduled")

	// ErrSlotNotAvailable возвращается, когда новое время занято,
	// вне рабочего окна или не попадает в сетку слотов
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrConcurrencyConflict возвращается, когда конкурентное бронирование
	// не дало зафиксировать транзакцию. Клиент может повторить запрос.
	ErrConcurrencyConflict = errors.New("reschedule_booking: concurrent booking conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
