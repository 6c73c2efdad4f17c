package purge_history

import (
	"context"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
	DeleteOccurredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// FeedbackRepository интерфейс репозитория отзывов
type FeedbackRepository interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// IncidentRepository интерфейс репозитория инцидентов
type IncidentRepository interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TxManager выполняет функцию внутри транзакции: все удаления и итоговое
// событие PURGE фиксируются атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
