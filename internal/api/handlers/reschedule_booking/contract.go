package reschedule_booking

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/usecase/reschedule_booking"
)

// UseCase интерфейс use case переноса бронирования
type UseCase interface {
	Execute(ctx context.Context, req *reschedule_booking.Request) (*reschedule_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
