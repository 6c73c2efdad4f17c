package reschedule_booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/bontle/BB-BookingService/internal/infra/storage/customer"
	"github.com/bontle/BB-BookingService/pkg/txmanager"
	"github.com/bontle/BB-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	existing []*domain.Booking

	movedTo *time.Time
	movedID string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ string) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByStoreWithFilter(_ context.Context, _ domain.StoreBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) UpdateSchedule(_ context.Context, id string, startAt, _ time.Time) error {
	f.movedID = id
	f.movedTo = &startAt
	return nil
}

type fakeCatalogRepo struct {
	hours *domain.StoreHours
}

func (f *fakeCatalogRepo) GetActiveHours(_ context.Context, _ int64, _ int) (*domain.StoreHours, error) {
	if f.hours == nil {
		return nil, catalogRepo.ErrHoursNotFound
	}
	return f.hours, nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
}

func (f *fakeCustomerRepo) GetByChatID(_ context.Context, _ string) (*domain.Customer, error) {
	if f.customer == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.customer, nil
}

type fakeEventRepo struct {
	entries []*domain.EventLogEntry
}

func (f *fakeEventRepo) Append(_ context.Context, entry *domain.EventLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 16, h, m, 0, 0, time.UTC) // Понедельник
}

func scheduledBooking() *domain.Booking {
	return &domain.Booking{
		ID:               "b-1",
		BookingCode:      "BO-1234",
		StoreID:          1,
		ServiceID:        10,
		CustomerID:       42,
		ScheduledStartAt: at(10, 0),
		ScheduledEndAt:   at(10, 30),
		Status:           domain.StatusScheduled,
	}
}

func workingHours() *domain.StoreHours {
	return &domain.StoreHours{
		StoreID:   1,
		DayOfWeek: 0,
		OpenTime:  types.TimeString("09:00"),
		CloseTime: types.TimeString("18:00"),
		Active:    true,
	}
}

func newUseCase(bookings *fakeBookingRepo, events *fakeEventRepo, tx *fakeTxManager) *UseCase {
	return NewUseCase(
		bookings,
		&fakeCatalogRepo{hours: workingHours()},
		&fakeCustomerRepo{customer: &domain.Customer{ID: 42, TelegramChatID: "chat-42"}},
		events,
		tx,
		noopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		BookingID:      "b-1",
		CustomerChatID: "chat-42",
		StartAt:        at(14, 0),
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: scheduledBooking()}
	events := &fakeEventRepo{}
	uc := newUseCase(bookings, events, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, at(14, 0), resp.Booking.ScheduledStartAt)
	assert.Equal(t, at(14, 30), resp.Booking.ScheduledEndAt)
	assert.Equal(t, "b-1", bookings.movedID)

	require.Len(t, events.entries, 1)
	entry := events.entries[0]
	assert.Equal(t, domain.EventRescheduled, entry.EventType)
	assert.Equal(t, domain.ActorCustomer, entry.ActorType)

	var metadata map[string]string
	require.NoError(t, json.Unmarshal([]byte(*entry.MetadataJSON), &metadata))
	assert.Equal(t, at(10, 0).Format(time.RFC3339), metadata["previous_start"])
	assert.Equal(t, at(14, 0).Format(time.RFC3339), metadata["new_start"])
}

func TestExecute_KeepsOriginalDuration(t *testing.T) {
	// Длительность услуги могла измениться после создания - интервал
	// сохраняет длину, зафиксированную при бронировании
	booking := scheduledBooking()
	booking.ScheduledEndAt = at(11, 0) // 60 минут

	bookings := &fakeBookingRepo{booking: booking}
	uc := newUseCase(bookings, &fakeEventRepo{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, at(15, 0), resp.Booking.ScheduledEndAt)
}

func TestExecute_SlotConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking: scheduledBooking(),
		existing: []*domain.Booking{
			{ID: "b-2", BookingCode: "BO-7777", ScheduledStartAt: at(14, 0), ScheduledEndAt: at(14, 30), Status: domain.StatusScheduled},
		},
	}
	uc := newUseCase(bookings, &fakeEventRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, bookings.movedTo)
}

func TestExecute_IgnoresOwnInterval(t *testing.T) {
	// Перенос на пересечение с собственным старым интервалом разрешён
	booking := scheduledBooking()
	bookings := &fakeBookingRepo{
		booking:  booking,
		existing: []*domain.Booking{booking},
	}
	uc := newUseCase(bookings, &fakeEventRepo{}, &fakeTxManager{})

	req := validRequest()
	req.StartAt = at(10, 0)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_NonScheduledStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusArrived, domain.StatusInService,
		domain.StatusCompleted, domain.StatusNoShow, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			booking := scheduledBooking()
			booking.Status = status
			uc := newUseCase(&fakeBookingRepo{booking: booking}, &fakeEventRepo{}, &fakeTxManager{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_ForeignBooking(t *testing.T) {
	booking := scheduledBooking()
	booking.CustomerID = 99
	uc := newUseCase(&fakeBookingRepo{booking: booking}, &fakeEventRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_UnknownCustomer(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{booking: scheduledBooking()},
		&fakeCatalogRepo{hours: workingHours()},
		&fakeCustomerRepo{},
		&fakeEventRepo{},
		&fakeTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeEventRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_OutsideHours(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{booking: scheduledBooking()}, &fakeEventRepo{}, &fakeTxManager{})

	tests := []struct {
		name  string
		start time.Time
	}{
		{"before opening", at(8, 30)},
		{"runs past closing", at(17, 45)},
		{"off the slot grid", at(14, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartAt = tt.start

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		})
	}
}

func TestExecute_SerializationConflict(t *testing.T) {
	uc := newUseCase(
		&fakeBookingRepo{booking: scheduledBooking()},
		&fakeEventRepo{},
		&fakeTxManager{commitErr: txmanager.ErrSerializationConflict},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{booking: scheduledBooking()}, &fakeEventRepo{}, &fakeTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty booking id", func(r *Request) { r.BookingID = "" }},
		{"empty chat id", func(r *Request) { r.CustomerChatID = "" }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
