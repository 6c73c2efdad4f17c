package update_booking_status

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/usecase/update_booking_status"
)

// UseCase интерфейс use case смены статуса бронирования
type UseCase interface {
	Execute(ctx context.Context, req *update_booking_status.Request) (*update_booking_status.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
