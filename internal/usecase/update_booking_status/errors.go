package update_booking_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrUnauthorized возвращается, когда у актора нет прав на операцию.
	// Отличается от ErrInvalidTransition: переход может быть валидным по
	// таблице, но недоступным этому актору.
	ErrUnauthorized = errors.New("update_booking_status: actor is not authorized")

	// ErrInvalidTransition возвращается, когда переход запрещён таблицей переходов
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
