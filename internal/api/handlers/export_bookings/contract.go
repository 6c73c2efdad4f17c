package export_bookings

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
	analyticsService "github.com/bontle/BB-BookingService/internal/service/analytics"
)

// AnalyticsService интерфейс сервиса аналитики
type AnalyticsService interface {
	ExportBookings(ctx context.Context, storeID int64, period analyticsService.Period, actor domain.Actor) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
