package update_booking_status

import "github.com/bontle/BB-BookingService/internal/domain"

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID string
	Target    domain.BookingStatus
	Actor     domain.Actor
}

// Response модель ответа со сменённым статусом
type Response struct {
	BookingID string
	Previous  domain.BookingStatus
	Status    domain.BookingStatus
}
