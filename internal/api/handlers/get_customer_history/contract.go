package get_customer_history

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	CustomerHistory(ctx context.Context, chatID string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
