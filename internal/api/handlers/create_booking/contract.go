package create_booking

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/usecase/create_booking"
)

// UseCase интерфейс use case создания бронирования
type UseCase interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
