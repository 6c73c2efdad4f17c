package catalog

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
	catalogService "github.com/bontle/BB-BookingService/internal/service/catalog"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	ListStores(ctx context.Context) ([]*domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	ListServices(ctx context.Context, q *catalogService.ServicesQuery) ([]*domain.Service, error)
	ListServiceCategories(ctx context.Context, storeID int64) ([]string, error)
	ListConsultants(ctx context.Context, storeID int64) ([]*domain.Consultant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
