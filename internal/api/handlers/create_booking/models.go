package create_booking

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Request тело запроса на создание бронирования
type Request struct {
	StoreID      int64  `json:"store_id"`
	ServiceID    int64  `json:"service_id"`
	ConsultantID *int64 `json:"consultant_id,omitempty"`
	StationID    *int64 `json:"station_id,omitempty"`

	CustomerChatID    string  `json:"customer_chat_id"`
	CustomerFirstName *string `json:"customer_first_name,omitempty"`

	StartAt time.Time `json:"start_at"`
	Channel string    `json:"channel"`
}

// Response тело ответа с созданным бронированием
type Response struct {
	ID           string    `json:"id"`
	BookingCode  string    `json:"booking_code"`
	StoreID      int64     `json:"store_id"`
	ServiceID    int64     `json:"service_id"`
	ConsultantID *int64    `json:"consultant_id,omitempty"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
}

func toResponse(b *domain.Booking) Response {
	return Response{
		ID:           b.ID,
		BookingCode:  b.BookingCode,
		StoreID:      b.StoreID,
		ServiceID:    b.ServiceID,
		ConsultantID: b.ConsultantID,
		StartAt:      b.ScheduledStartAt,
		EndAt:        b.ScheduledEndAt,
		Status:       string(b.Status),
	}
}
