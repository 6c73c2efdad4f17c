package get_available_slots

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/usecase/get_available_slots"
)

// UseCase интерфейс use case получения доступных слотов
type UseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
