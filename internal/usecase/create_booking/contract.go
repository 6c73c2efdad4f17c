package create_booking

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetConsultant(ctx context.Context, id int64) (*domain.Consultant, error)
	GetActiveHours(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreHours, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	CreateIfAbsent(ctx context.Context, chatID string, firstName *string) (*domain.Customer, error)
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
}

// TxManager выполняет функцию внутри SERIALIZABLE транзакции.
// Повторная проверка конфликтов и вставка бронирования обязаны идти
// в одной транзакции, иначе между проверкой и вставкой возможна гонка.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
