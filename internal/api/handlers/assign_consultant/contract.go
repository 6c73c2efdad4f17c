package assign_consultant

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	AssignConsultant(ctx context.Context, bookingID string, consultantID int64, actor domain.Actor) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
