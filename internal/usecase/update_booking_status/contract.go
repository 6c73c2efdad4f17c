package update_booking_status

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
}

// TxManager выполняет функцию внутри транзакции: смена статуса и запись
// события журнала фиксируются атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
