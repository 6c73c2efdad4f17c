package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bontle/BB-BookingService/internal/domain"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
)

// Пагинация списка услуг
const (
	defaultServicesLimit = 50
	maxServicesLimit     = 200
)

// Service читающие операции каталога: магазины, услуги, категории, консультанты.
// Каталог редактируется вне сервиса бронирований, здесь только выдача.
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый сервис каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{catalogRepo: catalogRepo, logger: logger}
}

// ListStores возвращает активные магазины сети
func (s *Service) ListStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.catalogRepo.ListActiveStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list stores: %v", ErrInternal, err)
	}
	return stores, nil
}

// GetStore возвращает магазин по ID
func (s *Service) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	store, err := s.catalogRepo.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStoreNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrStoreNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}
	return store, nil
}

// ServicesQuery параметры поиска по услугам магазина
type ServicesQuery struct {
	StoreID   int64
	Category  *string // Точное совпадение категории
	NameQuery *string // Подстрока названия, без учёта регистра
	Limit     uint64
	Offset    uint64
}

// ListServices возвращает страницу услуг магазина с фильтрами
func (s *Service) ListServices(ctx context.Context, q *ServicesQuery) ([]*domain.Service, error) {
	if q.StoreID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if q.NameQuery != nil {
		trimmed := strings.TrimSpace(*q.NameQuery)
		if trimmed == "" {
			q.NameQuery = nil
		} else {
			q.NameQuery = &trimmed
		}
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultServicesLimit
	}
	if limit > maxServicesLimit {
		limit = maxServicesLimit
	}

	services, err := s.catalogRepo.ListServices(ctx, q.StoreID, q.Category, q.NameQuery, limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}
	return services, nil
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	service, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}

// ListServiceCategories возвращает категории услуг магазина
func (s *Service) ListServiceCategories(ctx context.Context, storeID int64) ([]string, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	categories, err := s.catalogRepo.ListServiceCategories(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list categories: %v", ErrInternal, err)
	}
	return categories, nil
}

// ListConsultants возвращает активных консультантов магазина
func (s *Service) ListConsultants(ctx context.Context, storeID int64) ([]*domain.Consultant, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	consultants, err := s.catalogRepo.ListConsultants(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list consultants: %v", ErrInternal, err)
	}
	return consultants, nil
}
