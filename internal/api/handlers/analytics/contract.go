package analytics

import (
	"context"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
	analyticsService "github.com/bontle/BB-BookingService/internal/service/analytics"
)

// AnalyticsService интерфейс сервиса аналитики
type AnalyticsService interface {
	DailySummary(ctx context.Context, storeID int64, day time.Time, actor domain.Actor) (*domain.DailySummary, error)
	PeakHours(ctx context.Context, storeID int64, period analyticsService.Period, actor domain.Actor) ([]*domain.PeakHourBucket, error)
	ServiceMix(ctx context.Context, storeID int64, period analyticsService.Period, actor domain.Actor) ([]*domain.ServiceMixRow, error)
	ConsultantPerformance(ctx context.Context, storeID int64, period analyticsService.Period, actor domain.Actor) ([]*domain.ConsultantPerformanceRow, error)
	IncidentRate(ctx context.Context, storeID int64, period analyticsService.Period, actor domain.Actor) ([]*domain.IncidentRateRow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
