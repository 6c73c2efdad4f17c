package reschedule_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/bontle/BB-BookingService/internal/infra/storage/customer"
	"github.com/bontle/BB-BookingService/pkg/txmanager"
)

// UseCase use case для переноса бронирования клиентом.
// Длительность не пересчитывается: интервал сохраняет длину, зафиксированную
// при создании, даже если длительность услуги с тех пор изменилась.
// Проверка занятости нового интервала и перенос идут в одной SERIALIZABLE
// транзакции, как и при создании.
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

// rescheduledMetadata сериализуется в metadata_json события RESCHEDULED
type rescheduledMetadata struct {
	PreviousStart string `json:"previous_start"`
	NewStart      string `json:"new_start"`
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, start=%s",
		req.BookingID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Клиент, от имени которого идёт перенос
	customer, err := uc.customerRepo.GetByChatID(ctx, req.CustomerChatID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, fmt.Errorf("%w: unknown customer", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
	}

	// 3. Транзакция check-and-move
	var updated *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.checkAndMove(txCtx, req, customer.ID)
		if err != nil {
			return err
		}
		updated = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrUnauthorized),
			errors.Is(err, ErrNotReschedulable),
			errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Info("RescheduleBooking: rejected: %v", err)
			return nil, err
		case errors.Is(err, txmanager.ErrSerializationConflict):
			uc.logger.Warn("RescheduleBooking: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		default:
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RescheduleBooking: moved booking=%s to %s",
		updated.ID, updated.ScheduledStartAt.Format(time.RFC3339))

	return &Response{Booking: updated}, nil
}

// checkAndMove проверяет права, окно и занятость нового интервала и переносит
// бронирование с событием RESCHEDULED. Выполняется внутри SERIALIZABLE транзакции.
func (uc *UseCase) checkAndMove(ctx context.Context, req *Request, customerID int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, req.BookingID)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.CustomerID != customerID {
		return nil, fmt.Errorf("%w: booking=%s", ErrUnauthorized, booking.ID)
	}

	if booking.Status != domain.StatusScheduled {
		return nil, fmt.Errorf("%w: status=%s", ErrNotReschedulable, booking.Status)
	}

	// Интервал сохраняет исходную длину
	duration := booking.ScheduledEndAt.Sub(booking.ScheduledStartAt)
	newStart := req.StartAt
	newEnd := newStart.Add(duration)

	if err := uc.checkWithinHours(ctx, booking.StoreID, newStart, newEnd); err != nil {
		return nil, err
	}

	// Проверка занятости нового интервала; само переносимое бронирование
	// из конфликтов исключается
	existing, err := uc.bookingRepo.GetByStoreWithFilter(ctx, domain.StoreBookingsFilter{
		StoreID:      booking.StoreID,
		ConsultantID: booking.ConsultantID,
		From:         &newStart,
		To:           &newEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == booking.ID || other.IsCancelled() {
			continue
		}
		if other.Overlaps(newStart, newEnd) {
			return nil, fmt.Errorf("%w: conflicts with booking %s", ErrSlotNotAvailable, other.BookingCode)
		}
	}

	previousStart := booking.ScheduledStartAt

	if err := uc.bookingRepo.UpdateSchedule(ctx, booking.ID, newStart, newEnd); err != nil {
		return nil, fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
	}

	metadata, err := json.Marshal(rescheduledMetadata{
		PreviousStart: previousStart.Format(time.RFC3339),
		NewStart:      newStart.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
	}
	metadataJSON := string(metadata)

	// Ровно одно событие RESCHEDULED в той же транзакции, что и перенос
	if err := uc.eventRepo.Append(ctx, &domain.EventLogEntry{
		BookingID:    &booking.ID,
		StoreID:      &booking.StoreID,
		EventType:    domain.EventRescheduled,
		ActorType:    domain.ActorCustomer,
		MetadataJSON: &metadataJSON,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to append RESCHEDULED event: %v", ErrInternal, err)
	}

	booking.ScheduledStartAt = newStart
	booking.ScheduledEndAt = newEnd

	return booking, nil
}

// checkWithinHours проверяет, что новый интервал попадает в рабочее окно
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

	if startAt.Sub(windowOpen)%(domain.SlotStepMinutes*time.Minute) != 0 {
		return fmt.Errorf("%w: start time is off the slot grid", ErrSlotNotAvailable)
	}

	return nil
}
