package reschedule_booking

import (
	"context"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id string, startAt, endAt time.Time) error
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetActiveHours(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreHours, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByChatID(ctx context.Context, chatID string) (*domain.Customer, error)
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
}

// TxManager выполняет функцию внутри SERIALIZABLE транзакции.
// Проверка занятости нового интервала и перенос обязаны идти в одной
// транзакции, как и при создании бронирования.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
