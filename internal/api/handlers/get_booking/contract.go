package get_booking

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	GetByID(ctx context.Context, id string, actor domain.Actor) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string, actor domain.Actor) (*domain.Booking, error)
	Events(ctx context.Context, bookingID string, actor domain.Actor) ([]*domain.EventLogEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
