package get_available_slots

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByStoreWithFilter получает бронирования магазина, пересекающиеся с интервалом фильтра
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetActiveHours(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreHours, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
