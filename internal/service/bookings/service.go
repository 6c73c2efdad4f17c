package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/bontle/BB-BookingService/internal/infra/storage/customer"
)

// Service операции над существующими бронированиями: просмотр, очередь на день,
// назначение консультанта, инциденты и отзывы. Создание и статусная машина
// живут в отдельных usecase-пакетах.
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	customerRepo CustomerRepository
	eventRepo    EventRepository
	feedbackRepo FeedbackRepository
	incidentRepo IncidentRepository
	txManager    TxManager
	clock        Clock
	logger       Logger
}

// NewService создает новый сервис бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	eventRepo EventRepository,
	feedbackRepo FeedbackRepository,
	incidentRepo IncidentRepository,
	txManager TxManager,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		customerRepo: customerRepo,
		eventRepo:    eventRepo,
		feedbackRepo: feedbackRepo,
		incidentRepo: incidentRepo,
		txManager:    txManager,
		clock:        clock,
		logger:       logger,
	}
}

// GetByID возвращает бронирование, если актор видит его магазин
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !actor.ScopedTo(booking.StoreID) {
		return nil, fmt.Errorf("%w: actor is not scoped to store=%d", ErrUnauthorized, booking.StoreID)
	}

	return booking, nil
}

// GetByCode возвращает бронирование по человекочитаемому коду
func (s *Service) GetByCode(ctx context.Context, code string, actor domain.Actor) (*domain.Booking, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: booking code is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: code=%s", ErrBookingNotFound, code)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !actor.ScopedTo(booking.StoreID) {
		return nil, fmt.Errorf("%w: actor is not scoped to store=%d", ErrUnauthorized, booking.StoreID)
	}

	return booking, nil
}

// TodayQueue возвращает очередь бронирований магазина на сегодня,
// по возрастанию времени начала, без отменённых
func (s *Service) TodayQueue(ctx context.Context, storeID int64, actor domain.Actor) ([]*domain.Booking, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if !actor.ScopedTo(storeID) {
		return nil, fmt.Errorf("%w: actor is not scoped to store=%d", ErrUnauthorized, storeID)
	}

	now := s.clock.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	queue, err := s.bookingRepo.GetByStoreWithFilter(ctx, domain.StoreBookingsFilter{
		StoreID: storeID,
		From:    &dayStart,
		To:      &dayEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get today queue: %v", ErrInternal, err)
	}

	return queue, nil
}

// CustomerHistory возвращает бронирования клиента чат-бота, новые первыми
func (s *Service) CustomerHistory(ctx context.Context, chatID string) ([]*domain.Booking, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}

	customer, err := s.customerRepo.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, fmt.Errorf("%w: chat=%s", ErrCustomerNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	history, err := s.bookingRepo.GetByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get customer history: %v", ErrInternal, err)
	}

	return history, nil
}

// Events возвращает журнал событий бронирования в хронологическом порядке
func (s *Service) Events(ctx context.Context, bookingID string, actor domain.Actor) ([]*domain.EventLogEntry, error) {
	booking, err := s.GetByID(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	entries, err := s.eventRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events: %v", ErrInternal, err)
	}

	return entries, nil
}

// assignedMetadata сериализуется в metadata_json события ASSIGNED
type assignedMetadata struct {
	ConsultantID int64 `json:"consultant_id"`
}

// AssignConsultant назначает консультанта на бронирование и пишет событие ASSIGNED
func (s *Service) AssignConsultant(ctx context.Context, bookingID string, consultantID int64, actor domain.Actor) error {
	if consultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	booking, err := s.GetByID(ctx, bookingID, actor)
	if err != nil {
		return err
	}

	consultant, err := s.catalogRepo.GetConsultant(ctx, consultantID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrConsultantNotFound) {
			return fmt.Errorf("%w: id=%d not found", ErrConsultantUnavailable, consultantID)
		}
		return fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}
	if !consultant.IsActive || consultant.StoreID != booking.StoreID {
		return fmt.Errorf("%w: id=%d", ErrConsultantUnavailable, consultantID)
	}

	metadata, err := json.Marshal(assignedMetadata{ConsultantID: consultantID})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
	}
	metadataJSON := string(metadata)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.AssignConsultant(txCtx, booking.ID, consultantID); err != nil {
			return fmt.Errorf("%w: failed to assign consultant: %v", ErrInternal, err)
		}

		return s.appendEvent(txCtx, &domain.EventLogEntry{
			BookingID:    &booking.ID,
			StoreID:      &booking.StoreID,
			EventType:    domain.EventAssigned,
			ActorType:    domain.ActorStaff,
			ActorStaffID: actor.StaffID,
			MetadataJSON: &metadataJSON,
		})
	})
	if err != nil {
		s.logger.Error("AssignConsultant: failed: %v", err)
		return err
	}

	s.logger.Info("AssignConsultant: booking=%s, consultant=%d", booking.ID, consultantID)
	return nil
}

// incidentMetadata сериализуется в metadata_json события INCIDENT_LOGGED
type incidentMetadata struct {
	IncidentID string `json:"incident_id"`
	Category   string `json:"category"`
	Severity   string `json:"severity"`
}

// LogIncident регистрирует инцидент по бронированию и пишет событие INCIDENT_LOGGED
func (s *Service) LogIncident(ctx context.Context, req *IncidentRequest) (*domain.Incident, error) {
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.Severity == "" {
		return nil, fmt.Errorf("%w: severity is required", ErrInvalidInput)
	}
	if len(req.Note) > domain.MaxIncidentNoteLength {
		return nil, fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxIncidentNoteLength)
	}

	booking, err := s.GetByID(ctx, req.BookingID, req.Actor)
	if err != nil {
		return nil, err
	}

	incident := &domain.Incident{
		BookingID:   booking.ID,
		StaffUserID: req.Actor.StaffID,
		Category:    req.Category,
		Severity:    req.Severity,
		Note:        req.Note,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.incidentRepo.Create(txCtx, incident); err != nil {
			return fmt.Errorf("%w: failed to create incident: %v", ErrInternal, err)
		}

		metadata, err := json.Marshal(incidentMetadata{
			IncidentID: incident.ID,
			Category:   incident.Category,
			Severity:   incident.Severity,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
		}
		metadataJSON := string(metadata)

		return s.appendEvent(txCtx, &domain.EventLogEntry{
			BookingID:    &booking.ID,
			StoreID:      &booking.StoreID,
			EventType:    domain.EventIncidentLogged,
			ActorType:    domain.ActorStaff,
			ActorStaffID: req.Actor.StaffID,
			MetadataJSON: &metadataJSON,
		})
	})
	if err != nil {
		s.logger.Error("LogIncident: failed: %v", err)
		return nil, err
	}

	s.logger.Info("LogIncident: booking=%s, incident=%s, severity=%s", booking.ID, incident.ID, incident.Severity)
	return incident, nil
}

// feedbackMetadata сериализуется в metadata_json события FEEDBACK_RECEIVED
type feedbackMetadata struct {
	FeedbackID string `json:"feedback_id"`
	Rating     int    `json:"rating"`
}

// SubmitFeedback сохраняет отзыв клиента о завершённом бронировании.
// Отзыв может оставить только клиент этого бронирования и только после
// завершения визита.
func (s *Service) SubmitFeedback(ctx context.Context, req *FeedbackRequest) (*domain.Feedback, error) {
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if req.CustomerChatID == "" {
		return nil, fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}
	if req.Rating < domain.MinFeedbackRating || req.Rating > domain.MaxFeedbackRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinFeedbackRating, domain.MaxFeedbackRating)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxFeedbackCommentLength {
		return nil, fmt.Errorf("%w: comment is longer than %d characters",
			ErrInvalidInput, domain.MaxFeedbackCommentLength)
	}

	customer, err := s.customerRepo.GetByChatID(ctx, req.CustomerChatID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, fmt.Errorf("%w: chat=%s", ErrCustomerNotFound, req.CustomerChatID)
		}
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, req.BookingID)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.CustomerID != customer.ID {
		return nil, fmt.Errorf("%w: booking belongs to another customer", ErrFeedbackNotAllowed)
	}
	if booking.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: booking is not completed", ErrFeedbackNotAllowed)
	}

	// store/service/consultant денормализуются из бронирования
	fb := &domain.Feedback{
		BookingID:    booking.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		StoreID:      booking.StoreID,
		ServiceID:    booking.ServiceID,
		ConsultantID: booking.ConsultantID,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.feedbackRepo.Create(txCtx, fb); err != nil {
			return fmt.Errorf("%w: failed to create feedback: %v", ErrInternal, err)
		}

		metadata, err := json.Marshal(feedbackMetadata{FeedbackID: fb.ID, Rating: fb.Rating})
		if err != nil {
			return fmt.Errorf("%w: failed to marshal event metadata: %v", ErrInternal, err)
		}
		metadataJSON := string(metadata)

		return s.appendEvent(txCtx, &domain.EventLogEntry{
			BookingID:    &booking.ID,
			StoreID:      &booking.StoreID,
			EventType:    domain.EventFeedbackReceived,
			ActorType:    domain.ActorCustomer,
			MetadataJSON: &metadataJSON,
		})
	})
	if err != nil {
		s.logger.Error("SubmitFeedback: failed: %v", err)
		return nil, err
	}

	s.logger.Info("SubmitFeedback: booking=%s, rating=%d", booking.ID, fb.Rating)
	return fb, nil
}

func (s *Service) appendEvent(ctx context.Context, entry *domain.EventLogEntry) error {
	if err := s.eventRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: failed to append %s event: %v", ErrInternal, entry.EventType, err)
	}
	return nil
}
