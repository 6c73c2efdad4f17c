package handlers

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingResponse общее JSON представление бронирования
type BookingResponse struct {
	ID           string    `json:"id"`
	BookingCode  string    `json:"booking_code"`
	StoreID      int64     `json:"store_id"`
	StationID    *int64    `json:"station_id,omitempty"`
	ServiceID    int64     `json:"service_id"`
	ConsultantID *int64    `json:"consultant_id,omitempty"`
	CustomerID   int64     `json:"customer_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	Channel      string    `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBookingResponse конвертирует доменную модель в JSON представление
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		BookingCode:  b.BookingCode,
		StoreID:      b.StoreID,
		StationID:    b.StationID,
		ServiceID:    b.ServiceID,
		ConsultantID: b.ConsultantID,
		CustomerID:   b.CustomerID,
		StartAt:      b.ScheduledStartAt,
		EndAt:        b.ScheduledEndAt,
		Status:       string(b.Status),
		Channel:      b.SourceChannel,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToBookingResponses конвертирует слайс бронирований
func ToBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
