package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	"github.com/bontle/BB-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования.
// Проверка занятости слота и вставка идут в одной SERIALIZABLE транзакции:
// окно между get_available_slots и созданием ничем не защищено, поэтому
// занятость обязательно перепроверяется здесь.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	customerRepo CustomerRepository
	eventRepo    EventRepository
	txManager    TxManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	eventRepo EventRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		customerRepo: customerRepo,
		eventRepo:    eventRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// bookedMetadata сериализуется в metadata_json события BOOKED
type bookedMetadata struct {
	Channel     string `json:"channel"`
	BookingCode string `json:"booking_code"`
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: store=%d, service=%d, start=%s",
		req.StoreID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Магазин существует и активен
	store, err := uc.catalogRepo.GetStore(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStoreNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrStoreNotFound, req.StoreID)
		}
		return nil, fmt.Errorf("%w: failed to get store: %v", ErrInternal, err)
	}
	if !store.IsActive {
		return nil, fmt.Errorf("%w: id=%d", ErrStoreInactive, req.StoreID)
	}

	// 3. Услуга существует, активна и принадлежит этому магазину
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.StoreID != req.StoreID {
		return nil, fmt.Errorf("%w: id=%d does not belong to store=%d", ErrServiceNotFound, req.ServiceID, req.StoreID)
	}
	if !service.Active {
		return nil, fmt.Errorf("%w: id=%d", ErrServiceInactive, req.ServiceID)
	}

	// 4. Консультант (если выбран) активен и работает в этом магазине
	if req.ConsultantID != nil {
		consultant, err := uc.catalogRepo.GetConsultant(ctx, *req.ConsultantID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrConsultantNotFound) {
				return nil, fmt.Errorf("%w: id=%d not found", ErrConsultantUnavailable, *req.ConsultantID)
			}
			return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
		}
		if !consultant.IsActive || consultant.StoreID != req.StoreID {
			return nil, fmt.Errorf("%w: id=%d", ErrConsultantUnavailable, *req.ConsultantID)
		}
	}

	// 5. Запрошенное время внутри рабочего окна и на сетке слотов
	endAt := req.StartAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	if err := uc.checkWithinHours(ctx, req.StoreID, req.StartAt, endAt); err != nil {
		return nil, err
	}

	// 6. Клиент (создаётся при первом обращении)
	customer, err := uc.customerRepo.CreateIfAbsent(ctx, req.CustomerChatID, req.CustomerFirstName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
	}

	// 7. Транзакция check-and-book. Коллизия кода бронирования (unique constraint)
	// прерывает транзакцию в Postgres целиком, поэтому повтор идёт
	// с самого начала транзакции, с новым кодом.
	var created *domain.Booking
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		booking := &domain.Booking{
			ID:               uuid.NewString(),
			BookingCode:      generateBookingCode(),
			StoreID:          req.StoreID,
			StationID:        req.StationID,
			ServiceID:        req.ServiceID,
			ConsultantID:     req.ConsultantID,
			CustomerID:       customer.ID,
			ScheduledStartAt: req.StartAt,
			ScheduledEndAt:   endAt,
			Status:           domain.StatusScheduled,
			SourceChannel:    req.Channel,
		}

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return uc.checkAndBook(txCtx, booking)
		})

		if errors.Is(err, bookingRepo.ErrCodeConflict) {
			uc.logger.Warn("CreateBooking: booking code collision, retrying (attempt %d)", attempt+1)
			continue
		}
		if err != nil {
			break
		}

		created = booking
		break
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrCodeConflict) {
			uc.logger.Error("CreateBooking: exhausted booking code attempts")
			return nil, fmt.Errorf("%w: could not generate unique booking code", ErrInternal)
		}
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Info("CreateBooking: slot not available: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if created == nil {
		uc.logger.Error("CreateBooking: exhausted booking code attempts")
		return nil, fmt.Errorf("%w: could not generate unique booking code", ErrInternal)
	}

	uc.logger.Info("CreateBooking: created booking=%s, code=%s", created.ID, created.BookingCode)

	return &Response{Booking: created}, nil
}

// checkWithinHours проверяет, что интервал бронирования попадает в рабочее окно
// магазина и начало лежит на сетке слотов от открытия
func (uc *UseCase) checkWithinHours(ctx context.Context, storeID int64, startAt, endAt time.Time) error {
	hours, err := uc.catalogRepo.GetActiveHours(ctx, storeID, domain.WeekdayIndex(startAt.Weekday()))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrHoursNotFound) {
			return fmt.Errorf("%w: store is closed on this day", ErrSlotNotAvailable)
		}
		return fmt.Errorf("%w: failed to get store hours: %v", ErrInternal, err)
	}

	windowOpen, err := hours.OpenTime.On(startAt)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	windowClose, err := hours.CloseTime.On(startAt)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if startAt.Before(windowOpen) || endAt.After(windowClose) {
		return fmt.Errorf("%w: outside working hours", ErrSlotNotAvailable)
	}

	// Начало только на сетке с шагом от открытия
	if startAt.Sub(windowOpen)%(domain.SlotStepMinutes*time.Minute) != 0 {
		return fmt.Errorf("%w: start time is off the slot grid", ErrSlotNotAvailable)
	}

	return nil
}

// checkAndBook перепроверяет занятость слота и создаёт бронирование с событием BOOKED.
// Выполняется внутри SERIALIZABLE транзакции.
func (uc *UseCase) checkAndBook(ctx context.Context, booking *domain.Booking) error {
	// Повторная проверка конфликтов: берём все не отменённые бронирования,
	// пересекающие интервал (внутри транзакции строки блокируются FOR UPDATE)
	existing, err := uc.bookingRepo.GetByStoreWithFilter(ctx, domain.StoreBookingsFilter{
		StoreID:      booking.StoreID,
		ConsultantID: booking.ConsultantID,
		From:         &booking.ScheduledStartAt,
		To:           &booking.ScheduledEndAt,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to re-check conflicts: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.IsCancelled() {
			continue
		}
		if other.Overlaps(booking.ScheduledStartAt, booking.ScheduledEndAt) {
			return fmt.Errorf("%w: conflicts with booking %s", ErrSlotNotAvailable, other.BookingCode)
		}
	}

	if _, err := uc.bookingRepo.Create(ctx, booking); err != nil {
		// ErrCodeConflict отдаём как есть - внешний цикл повторит с новым кодом
		return err
	}

	metadata, err := json.Marshal(bookedMetadata{
		Channel:     booking.SourceChannel,
		BookingCode: booking.BookingCode,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
	}
	metadataJSON := string(metadata)

	// Ровно одно событие BOOKED в той же транзакции, что и вставка
	if err := uc.eventRepo.Append(ctx, &domain.EventLogEntry{
		BookingID:    &booking.ID,
		StoreID:      &booking.StoreID,
		EventType:    domain.EventBooked,
		ActorType:    domain.ActorCustomer,
		MetadataJSON: &metadataJSON,
	}); err != nil {
		return fmt.Errorf("%w: failed to append BOOKED event: %v", ErrInternal, err)
	}

	return nil
}
