package purge_history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// UseCase use case очистки истории по сроку хранения.
// Единственное место в сервисе, где записи журнала и бронирования
// физически удаляются. Требует elevated-доступа.
type UseCase struct {
	bookingRepo     BookingRepository
	eventRepo       EventRepository
	feedbackRepo    FeedbackRepository
	incidentRepo    IncidentRepository
	txManager       TxManager
	minPurgeAgeDays int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// minPurgeAgeDays - минимальный срок хранения из конфигурации, запросы
// с меньшим порогом отклоняются.
func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	feedbackRepo FeedbackRepository,
	incidentRepo IncidentRepository,
	txManager TxManager,
	minPurgeAgeDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		eventRepo:       eventRepo,
		feedbackRepo:    feedbackRepo,
		incidentRepo:    incidentRepo,
		txManager:       txManager,
		minPurgeAgeDays: minPurgeAgeDays,
		logger:          logger,
	}
}

// purgeMetadata сериализуется в metadata_json события PURGE.
// Счётчики aged_* - только строки старше cutoff, удалённые напрямую;
// дочерние строки моложе cutoff, снесённые каскадом вместе со своим
// бронированием, в них не входят.
type purgeMetadata struct {
	OlderThanDays    int    `json:"older_than_days"`
	Cutoff           string `json:"cutoff"`
	DeletedBookings  int64  `json:"deleted_bookings"`
	DeletedEvents    int64  `json:"deleted_aged_events"`
	DeletedFeedback  int64  `json:"deleted_aged_feedback"`
	DeletedIncidents int64  `json:"deleted_aged_incidents"`
}

// Execute выполняет use case очистки истории
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PurgeHistory: olderThanDays=%d", req.OlderThanDays)

	if req.OlderThanDays <= 0 {
		return nil, fmt.Errorf("%w: olderThanDays must be positive", ErrInvalidInput)
	}

	// Привилегия проверяется до порога: непривилегированный актор не должен
	// узнавать настройки retention из текста ошибки
	if !req.Actor.CanPurge() {
		uc.logger.Warn("PurgeHistory: rejected, actor lacks purge capability")
		return nil, fmt.Errorf("%w: purge requires elevated access", ErrUnauthorized)
	}

	if req.OlderThanDays < uc.minPurgeAgeDays {
		return nil, fmt.Errorf("%w: %d days is below the minimum of %d",
			ErrRetentionTooShort, req.OlderThanDays, uc.minPurgeAgeDays)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -req.OlderThanDays)

	resp := &Response{Cutoff: cutoff}

	// Все удаления и итоговое событие PURGE в одной транзакции.
	// Порядок: сначала зависимые таблицы, затем бронирования.
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		if resp.DeletedFeedback, err = uc.feedbackRepo.DeleteCreatedBefore(txCtx, cutoff); err != nil {
			return fmt.Errorf("%w: failed to purge feedback: %v", ErrInternal, err)
		}

		if resp.DeletedIncidents, err = uc.incidentRepo.DeleteCreatedBefore(txCtx, cutoff); err != nil {
			return fmt.Errorf("%w: failed to purge incidents: %v", ErrInternal, err)
		}

		if resp.DeletedEvents, err = uc.eventRepo.DeleteOccurredBefore(txCtx, cutoff); err != nil {
			return fmt.Errorf("%w: failed to purge events: %v", ErrInternal, err)
		}

		if resp.DeletedBookings, err = uc.bookingRepo.DeleteCreatedBefore(txCtx, cutoff); err != nil {
			return fmt.Errorf("%w: failed to purge bookings: %v", ErrInternal, err)
		}

		// Ровно одно событие PURGE - след операции остаётся в журнале
		metadata, err := json.Marshal(purgeMetadata{
			OlderThanDays:    req.OlderThanDays,
			Cutoff:           cutoff.Format(time.RFC3339),
			DeletedBookings:  resp.DeletedBookings,
			DeletedEvents:    resp.DeletedEvents,
			DeletedFeedback:  resp.DeletedFeedback,
			DeletedIncidents: resp.DeletedIncidents,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to marshal purge metadata: %v", ErrInternal, err)
		}
		metadataJSON := string(metadata)

		if err := uc.eventRepo.Append(txCtx, &domain.EventLogEntry{
			EventType:    domain.EventPurge,
			ActorType:    domain.ActorStaff,
			ActorStaffID: req.Actor.StaffID,
			MetadataJSON: &metadataJSON,
		}); err != nil {
			return fmt.Errorf("%w: failed to append PURGE event: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("PurgeHistory: failed: %v", err)
		return nil, err
	}

	uc.logger.Info("PurgeHistory: deleted bookings=%d, events=%d, feedback=%d, incidents=%d",
		resp.DeletedBookings, resp.DeletedEvents, resp.DeletedFeedback, resp.DeletedIncidents)

	return resp, nil
}
