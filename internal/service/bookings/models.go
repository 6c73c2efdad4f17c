package bookings

import "github.com/bontle/BB-BookingService/internal/domain"

// IncidentRequest запрос на регистрацию инцидента
type IncidentRequest struct {
	BookingID string
	Category  string
	Severity  string
	Note      string
	Actor     domain.Actor
}

// FeedbackRequest запрос на отзыв клиента
type FeedbackRequest struct {
	BookingID      string
	CustomerChatID string
	Rating         int
	Comment        *string
}
