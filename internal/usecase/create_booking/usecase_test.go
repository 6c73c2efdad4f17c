package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	"github.com/bontle/BB-BookingService/pkg/ptr"
	"github.com/bontle/BB-BookingService/pkg/txmanager"
	"github.com/bontle/BB-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking

	createErrs []error // Ошибки для последовательных вызовов Create
	created    []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	call := len(f.created)
	if call < len(f.createErrs) && f.createErrs[call] != nil {
		err := f.createErrs[call]
		f.created = append(f.created, nil)
		return nil, err
	}
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) GetByStoreWithFilter(_ context.Context, _ domain.StoreBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeCatalogRepo struct {
	store      *domain.Store
	service    *domain.Service
	consultant *domain.Consultant
	hours      *domain.StoreHours
}

func (f *fakeCatalogRepo) GetStore(_ context.Context, _ int64) (*domain.Store, error) {
	if f.store == nil {
		return nil, catalogRepo.ErrStoreNotFound
	}
	return f.store, nil
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if f.service == nil {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalogRepo) GetConsultant(_ context.Context, _ int64) (*domain.Consultant, error) {
	if f.consultant == nil {
		return nil, catalogRepo.ErrConsultantNotFound
	}
	return f.consultant, nil
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

func (f *fakeCustomerRepo) CreateIfAbsent(_ context.Context, chatID string, firstName *string) (*domain.Customer, error) {
	if f.customer != nil {
		return f.customer, nil
	}
	return &domain.Customer{ID: 42, TelegramChatID: chatID, DisplayFirstName: firstName}, nil
}

type fakeEventRepo struct {
	entries []*domain.EventLogEntry
	err     error
}

func (f *fakeEventRepo) Append(_ context.Context, entry *domain.EventLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

// fakeTxManager выполняет fn без настоящей транзакции; commitErr имитирует
// ошибку фиксации
type fakeTxManager struct {
	commitErr error
	calls     int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func workingCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		store:   &domain.Store{ID: 1, IsActive: true},
		service: &domain.Service{ID: 10, StoreID: 1, DurationMinutes: 30, Active: true},
		hours: &domain.StoreHours{
			StoreID:   1,
			OpenTime:  types.TimeString("09:00"),
			CloseTime: types.TimeString("18:00"),
			Active:    true,
		},
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		StoreID:        1,
		ServiceID:      10,
		CustomerChatID: "chat-100",
		StartAt:        mustTime(t, "2026-09-07 10:00"),
		Channel:        domain.ChannelTelegram,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	events := &fakeEventRepo{}
	tx := &fakeTxManager{}

	uc := NewUseCase(repo, workingCatalog(), &fakeCustomerRepo{}, events, tx, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	b := resp.Booking
	require.NotNil(t, b)
	assert.Equal(t, domain.StatusScheduled, b.Status)
	assert.Equal(t, int64(42), b.CustomerID)
	assert.Equal(t, mustTime(t, "2026-09-07 10:30"), b.ScheduledEndAt)
	assert.Regexp(t, `^BO-\d{4}$`, b.BookingCode)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, 1, tx.calls)

	// Ровно одно событие BOOKED, в той же транзакции
	require.Len(t, events.entries, 1)
	ev := events.entries[0]
	assert.Equal(t, domain.EventBooked, ev.EventType)
	assert.Equal(t, domain.ActorCustomer, ev.ActorType)
	require.NotNil(t, ev.BookingID)
	assert.Equal(t, b.ID, *ev.BookingID)
	require.NotNil(t, ev.MetadataJSON)
	assert.Contains(t, *ev.MetadataJSON, `"channel":"TELEGRAM"`)
	assert.Contains(t, *ev.MetadataJSON, b.BookingCode)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeBookingRepo{
		existing: []*domain.Booking{{
			BookingCode:      "BO-1111",
			StoreID:          1,
			Status:           domain.StatusScheduled,
			ScheduledStartAt: mustTime(t, "2026-09-07 10:00"),
			ScheduledEndAt:   mustTime(t, "2026-09-07 10:30"),
		}},
	}
	events := &fakeEventRepo{}

	uc := NewUseCase(repo, workingCatalog(), &fakeCustomerRepo{}, events, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, events.entries)
}

func TestExecute_AdjacentBookingDoesNotConflict(t *testing.T) {
	// Существующее бронирование 09:30-10:00 граничит с запрошенным 10:00-10:30
	repo := &fakeBookingRepo{
		existing: []*domain.Booking{{
			BookingCode:      "BO-1111",
			StoreID:          1,
			Status:           domain.StatusScheduled,
			ScheduledStartAt: mustTime(t, "2026-09-07 09:30"),
			ScheduledEndAt:   mustTime(t, "2026-09-07 10:00"),
		}},
	}

	uc := NewUseCase(repo, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	req := validRequest(t)
	req.StartAt = mustTime(t, "2026-09-07 08:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_EndPastClosing(t *testing.T) {
	catalog := workingCatalog()
	catalog.service.DurationMinutes = 90

	uc := NewUseCase(&fakeBookingRepo{}, catalog, &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	req := validRequest(t)
	req.StartAt = mustTime(t, "2026-09-07 17:00") // конец 18:30 > 18:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OffGridStart(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	req := validRequest(t)
	req.StartAt = mustTime(t, "2026-09-07 10:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_StoreClosedDay(t *testing.T) {
	catalog := workingCatalog()
	catalog.hours = nil

	uc := NewUseCase(&fakeBookingRepo{}, catalog, &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_StoreAndServiceChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeCatalogRepo)
		wantErr error
	}{
		{"store missing", func(c *fakeCatalogRepo) { c.store = nil }, ErrStoreNotFound},
		{"store inactive", func(c *fakeCatalogRepo) { c.store.IsActive = false }, ErrStoreInactive},
		{"service missing", func(c *fakeCatalogRepo) { c.service = nil }, ErrServiceNotFound},
		{"service inactive", func(c *fakeCatalogRepo) { c.service.Active = false }, ErrServiceInactive},
		{"service of other store", func(c *fakeCatalogRepo) { c.service.StoreID = 2 }, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := workingCatalog()
			tt.mutate(catalog)

			uc := NewUseCase(&fakeBookingRepo{}, catalog, &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

			_, err := uc.Execute(context.Background(), validRequest(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConsultantChecks(t *testing.T) {
	tests := []struct {
		name       string
		consultant *domain.Consultant
	}{
		{"missing", nil},
		{"inactive", &domain.Consultant{ID: 7, StoreID: 1, IsActive: false}},
		{"other store", &domain.Consultant{ID: 7, StoreID: 2, IsActive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := workingCatalog()
			catalog.consultant = tt.consultant

			uc := NewUseCase(&fakeBookingRepo{}, catalog, &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

			req := validRequest(t)
			req.ConsultantID = ptr.Ptr(int64(7))

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrConsultantUnavailable)
		})
	}
}

func TestExecute_BookingCodeCollisionRetried(t *testing.T) {
	repo := &fakeBookingRepo{
		createErrs: []error{bookingRepo.ErrCodeConflict, nil},
	}
	tx := &fakeTxManager{}

	uc := NewUseCase(repo, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, tx, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
	// Вся транзакция повторяется с новым кодом
	assert.Equal(t, 2, tx.calls)
}

func TestExecute_BookingCodeCollisionExhausted(t *testing.T) {
	errs := make([]error, maxCodeAttempts)
	for i := range errs {
		errs[i] = bookingRepo.ErrCodeConflict
	}
	repo := &fakeBookingRepo{createErrs: errs}

	uc := NewUseCase(repo, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SerializationConflict(t *testing.T) {
	tx := &fakeTxManager{
		commitErr: fmt.Errorf("%w: commit: restart transaction", txmanager.ErrSerializationConflict),
	}

	uc := NewUseCase(&fakeBookingRepo{}, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, tx, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, workingCatalog(), &fakeCustomerRepo{}, &fakeEventRepo{}, &fakeTxManager{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero store", func(r *Request) { r.StoreID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"empty chat id", func(r *Request) { r.CustomerChatID = "" }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
		{"bad channel", func(r *Request) { r.Channel = "CARRIER_PIGEON" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
