package purge_history

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/usecase/purge_history"
)

// UseCase интерфейс use case очистки истории
type UseCase interface {
	Execute(ctx context.Context, req *purge_history.Request) (*purge_history.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
