package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrUnauthorized возвращается, когда актор не видит магазин бронирования
	ErrUnauthorized = errors.New("bookings.service: actor is not authorized")

	// ErrConsultantUnavailable возвращается, когда консультант не найден,
	// выключен или работает в другом магазине
	ErrConsultantUnavailable = errors.New("bookings.service: consultant unavailable")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("bookings.service: customer not found")

	// ErrFeedbackNotAllowed возвращается, когда отзыв оставляют не на
	// завершённое бронирование или на чужое бронирование
	ErrFeedbackNotAllowed = errors.New("bookings.service: feedback is not allowed for this booking")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
