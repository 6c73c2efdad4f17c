package bookings

import (
	"context"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error)
	AssignConsultant(ctx context.Context, id string, consultantID int64) error
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetConsultant(ctx context.Context, id int64) (*domain.Consultant, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByChatID(ctx context.Context, chatID string) (*domain.Customer, error)
}

// EventRepository интерфейс журнала событий
type EventRepository interface {
	Append(ctx context.Context, entry *domain.EventLogEntry) error
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.EventLogEntry, error)
}

// FeedbackRepository интерфейс репозитория отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
}

// IncidentRepository интерфейс репозитория инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, inc *domain.Incident) (*domain.Incident, error)
}

// TxManager выполняет функцию внутри транзакции: запись и её событие журнала
// фиксируются атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Clock отдаёт текущее время; выделен в интерфейс ради тестов TodayQueue
type Clock interface {
	Now() time.Time
}

// RealClock системные часы
type RealClock struct{}

// Now возвращает текущее время UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
