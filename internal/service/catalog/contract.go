package catalog

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	ListActiveStores(ctx context.Context) ([]*domain.Store, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, storeID int64, category *string, nameQuery *string, limit, offset uint64) ([]*domain.Service, error)
	ListServiceCategories(ctx context.Context, storeID int64) ([]string, error)
	ListConsultants(ctx context.Context, storeID int64) ([]*domain.Consultant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
