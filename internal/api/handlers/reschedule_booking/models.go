package reschedule_booking

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Request тело запроса на перенос бронирования
type Request struct {
	CustomerChatID string    `json:"customer_chat_id"`
	StartAt        time.Time `json:"start_at"`
}

// Response тело ответа с перенесённым бронированием
type Response struct {
	ID          string    `json:"id"`
	BookingCode string    `json:"booking_code"`
	StoreID     int64     `json:"store_id"`
	ServiceID   int64     `json:"service_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
}

func toResponse(b *domain.Booking) Response {
	return Response{
		ID:          b.ID,
		BookingCode: b.BookingCode,
		StoreID:     b.StoreID,
		ServiceID:   b.ServiceID,
		StartAt:     b.ScheduledStartAt,
		EndAt:       b.ScheduledEndAt,
		Status:      string(b.Status),
	}
}
