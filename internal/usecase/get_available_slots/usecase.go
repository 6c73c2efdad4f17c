package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/bontle/BB-BookingService/internal/domain"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов для бронирования.
// Только чтение: не меняет состояние и не даёт изоляционных гарантий
// относительно параллельных бронирований - повторная проверка конфликтов
// делается в create_booking внутри сериализуемой транзакции.
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: store=%d, service=%d, date=%s",
		req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	emptyResponse := &Response{
		StoreID:      req.StoreID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		ConsultantID: req.ConsultantID,
		Times:        []string{},
	}

	// 2. Расписание магазина на день недели.
	// Нет активной записи = магазин закрыт, это пустой результат, а не ошибка.
	hours, err := uc.catalogRepo.GetActiveHours(ctx, req.StoreID, domain.WeekdayIndex(req.Date.Weekday()))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: store=%d is closed on %s",
				req.StoreID, req.Date.Format(domain.DateFormat))
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get store hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get store hours: %v", ErrInternal, err)
	}

	// 3. Услуга: отсутствующая или выключенная тоже даёт пустой результат
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Info("GetAvailableSlots: service=%d not found", req.ServiceID)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service: %v", err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Info("GetAvailableSlots: service=%d is inactive", req.ServiceID)
		return emptyResponse, nil
	}

	// 4. Границы рабочего окна в координатах даты запроса
	windowOpen, err := hours.OpenTime.On(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	windowClose, err := hours.CloseTime.On(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	// 5. Существующие бронирования, пересекающиеся с окном
	// (кроме отменённых; опционально - только для выбранного консультанта)
	bookings, err := uc.bookingRepo.GetByStoreWithFilter(ctx, domain.StoreBookingsFilter{
		StoreID:      req.StoreID,
		ConsultantID: req.ConsultantID,
		From:         &windowOpen,
		To:           &windowClose,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерация доступных времён начала
	times := generateStartTimes(windowOpen, windowClose, service.DurationMinutes, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots for store=%d, service=%d, date=%s",
		len(times), req.StoreID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		StoreID:      req.StoreID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		ConsultantID: req.ConsultantID,
		Times:        times,
	}, nil
}
