package update_booking_status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
)

// UseCase use case для перевода бронирования по статусной машине.
// Порядок проверок фиксированный: существование -> область видимости актора ->
// правило отмены -> таблица переходов. Отмена проверяется ДО таблицы: это
// авторизационное правило, обходящее таблицу, а не её часть.
type UseCase struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	txManager   TxManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// transitionMetadata сериализуется в metadata_json события перехода
type transitionMetadata struct {
	Previous domain.BookingStatus `json:"previous"`
}

// Execute выполняет use case смены статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%s, target=%s", req.BookingID, req.Target)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Чтение, проверки и запись атомарно: смена статуса без события
	// журнала (или наоборот) невозможна
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%s", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := uc.authorize(booking, req); err != nil {
			return err
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, req.Target); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		if err := uc.appendEvent(txCtx, booking, req); err != nil {
			return err
		}

		resp = &Response{
			BookingID: booking.ID,
			Previous:  booking.Status,
			Status:    req.Target,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidTransition) {
			uc.logger.Warn("UpdateBookingStatus: rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("UpdateBookingStatus: failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%s, %s -> %s", resp.BookingID, resp.Previous, resp.Status)

	return resp, nil
}

// authorize проверяет права актора и допустимость перехода.
// Ошибки различаются намеренно: ErrUnauthorized - про актора,
// ErrInvalidTransition - про таблицу переходов.
func (uc *UseCase) authorize(booking *domain.Booking, req *Request) error {
	// Актор должен видеть магазин бронирования
	if !req.Actor.ScopedTo(booking.StoreID) {
		return fmt.Errorf("%w: actor is not scoped to store=%d", ErrUnauthorized, booking.StoreID)
	}

	// Отмена - обходное правило: доступна из любого нетерминального статуса,
	// но требует отдельной привилегии
	if req.Target == domain.StatusCancelled {
		if booking.IsTerminal() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, req.Target)
		}
		if !req.Actor.CanCancel(booking.StoreID) {
			return fmt.Errorf("%w: cancellation requires manager or elevated access", ErrUnauthorized)
		}
		return nil
	}

	if !domain.CanTransition(booking.Status, req.Target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, req.Target)
	}

	return nil
}

// appendEvent записывает ровно одно событие журнала для перехода
func (uc *UseCase) appendEvent(ctx context.Context, booking *domain.Booking, req *Request) error {
	eventType, ok := domain.EventTypeForStatus(req.Target)
	if !ok {
		return fmt.Errorf("%w: no event type for status %s", ErrInternal, req.Target)
	}

	metadata, err := json.Marshal(transitionMetadata{Previous: booking.Status})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
	}
	metadataJSON := string(metadata)

	actorType := req.Actor.Type
	if actorType == "" {
		actorType = domain.ActorStaff
	}

	if err := uc.eventRepo.Append(ctx, &domain.EventLogEntry{
		BookingID:    &booking.ID,
		StoreID:      &booking.StoreID,
		EventType:    eventType,
		ActorType:    actorType,
		ActorStaffID: req.Actor.StaffID,
		MetadataJSON: &metadataJSON,
	}); err != nil {
		return fmt.Errorf("%w: failed to append %s event: %v", ErrInternal, eventType, err)
	}

	return nil
}
