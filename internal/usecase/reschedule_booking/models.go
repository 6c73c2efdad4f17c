package reschedule_booking

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID string

	// Идентификация клиента по внешнему ключу чата: переносить можно
	// только собственные бронирования
	CustomerChatID string

	StartAt time.Time // Новое время начала, подтверждённое через get_available_slots
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	Booking *domain.Booking
}
