package get_today_queue

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	TodayQueue(ctx context.Context, storeID int64, actor domain.Actor) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
