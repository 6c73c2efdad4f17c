package submit_feedback

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	SubmitFeedback(ctx context.Context, req *bookings.FeedbackRequest) (*domain.Feedback, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
