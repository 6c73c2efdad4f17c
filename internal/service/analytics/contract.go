package analytics

import (
	"context"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// AnalyticsRepository интерфейс агрегатных запросов аналитики
type AnalyticsRepository interface {
	DailySummary(ctx context.Context, storeID int64, day time.Time) (*domain.DailySummary, error)
	PeakHours(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.PeakHourBucket, error)
	ServiceMix(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.ServiceMixRow, error)
	ConsultantPerformance(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.ConsultantPerformanceRow, error)
	IncidentRate(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.IncidentRateRow, error)
}

// BookingRepository интерфейс репозитория бронирований (для экспорта CSV)
type BookingRepository interface {
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
