package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Service отчёты по магазину и экспорт бронирований.
// Все методы требуют, чтобы актор видел магазин; elevated видит все.
type Service struct {
	analyticsRepo AnalyticsRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewService создает новый сервис аналитики
func NewService(analyticsRepo AnalyticsRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		analyticsRepo: analyticsRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// Period границы отчётного периода [From, To)
type Period struct {
	From time.Time
	To   time.Time
}

func (s *Service) checkAccess(storeID int64, actor domain.Actor) error {
	if storeID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if !actor.ScopedTo(storeID) {
		return fmt.Errorf("%w: actor is not scoped to store=%d", ErrUnauthorized, storeID)
	}
	return nil
}

func validatePeriod(p Period) error {
	if p.From.IsZero() || p.To.IsZero() {
		return fmt.Errorf("%w: period bounds are required", ErrInvalidInput)
	}
	if !p.From.Before(p.To) {
		return fmt.Errorf("%w: period start must be before its end", ErrInvalidInput)
	}
	return nil
}

// DailySummary возвращает итоги дня по магазину
func (s *Service) DailySummary(ctx context.Context, storeID int64, day time.Time, actor domain.Actor) (*domain.DailySummary, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	summary, err := s.analyticsRepo.DailySummary(ctx, storeID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get daily summary: %v", ErrInternal, err)
	}
	return summary, nil
}

// PeakHours возвращает распределение бронирований по часам за период
func (s *Service) PeakHours(ctx context.Context, storeID int64, period Period, actor domain.Actor) ([]*domain.PeakHourBucket, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	buckets, err := s.analyticsRepo.PeakHours(ctx, storeID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get peak hours: %v", ErrInternal, err)
	}
	return buckets, nil
}

// ServiceMix возвращает распределение бронирований по услугам за период
func (s *Service) ServiceMix(ctx context.Context, storeID int64, period Period, actor domain.Actor) ([]*domain.ServiceMixRow, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.ServiceMix(ctx, storeID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get service mix: %v", ErrInternal, err)
	}
	return rows, nil
}

// ConsultantPerformance возвращает показатели консультантов за период
func (s *Service) ConsultantPerformance(ctx context.Context, storeID int64, period Period, actor domain.Actor) ([]*domain.ConsultantPerformanceRow, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.ConsultantPerformance(ctx, storeID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get consultant performance: %v", ErrInternal, err)
	}
	return rows, nil
}

// IncidentRate возвращает отношение инцидентов к бронированиям по дням
func (s *Service) IncidentRate(ctx context.Context, storeID int64, period Period, actor domain.Actor) ([]*domain.IncidentRateRow, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.IncidentRate(ctx, storeID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get incident rate: %v", ErrInternal, err)
	}
	return rows, nil
}

// ExportBookings возвращает бронирования магазина за период для выгрузки CSV,
// включая отменённые
func (s *Service) ExportBookings(ctx context.Context, storeID int64, period Period, actor domain.Actor) ([]*domain.Booking, error) {
	if err := s.checkAccess(storeID, actor); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByStoreWithFilter(ctx, domain.StoreBookingsFilter{
		StoreID:          storeID,
		From:             &period.From,
		To:               &period.To,
		IncludeCancelled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to export bookings: %v", ErrInternal, err)
	}

	s.logger.Info("ExportBookings: store=%d, rows=%d", storeID, len(bookings))
	return bookings, nil
}
