package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/bontle/BB-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/bontle/BB-BookingService/internal/infra/storage/customer"
	"github.com/bontle/BB-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID     map[string]*domain.Booking
	byCode   map[string]*domain.Booking
	byStore  []*domain.Booking
	history  []*domain.Booking
	assigned map[string]int64

	gotFilter *domain.StoreBookingsFilter
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:     make(map[string]*domain.Booking),
		byCode:   make(map[string]*domain.Booking),
		assigned: make(map[string]int64),
	}
}

func (f *fakeBookingRepo) add(b *domain.Booking) *domain.Booking {
	f.byID[b.ID] = b
	f.byCode[b.BookingCode] = b
	return b
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByCode(_ context.Context, code string) (*domain.Booking, error) {
	if b, ok := f.byCode[code]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByStoreWithFilter(_ context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = &filter
	return f.byStore, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.history, nil
}

func (f *fakeBookingRepo) AssignConsultant(_ context.Context, id string, consultantID int64) error {
	f.assigned[id] = consultantID
	return nil
}

type fakeCatalogRepo struct {
	consultant *domain.Consultant
}

func (f *fakeCatalogRepo) GetConsultant(_ context.Context, _ int64) (*domain.Consultant, error) {
	if f.consultant == nil {
		return nil, catalogRepo.ErrConsultantNotFound
	}
	return f.consultant, nil
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
	listed  []*domain.EventLogEntry
}

func (f *fakeEventRepo) Append(_ context.Context, entry *domain.EventLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeEventRepo) ListByBooking(_ context.Context, _ string) ([]*domain.EventLogEntry, error) {
	return f.listed, nil
}

type fakeFeedbackRepo struct {
	created []*domain.Feedback
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	fb.ID = "fb-1"
	f.created = append(f.created, fb)
	return fb, nil
}

type fakeIncidentRepo struct {
	created []*domain.Incident
}

func (f *fakeIncidentRepo) Create(_ context.Context, inc *domain.Incident) (*domain.Incident, error) {
	inc.ID = "inc-1"
	f.created = append(f.created, inc)
	return inc, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	bookings  *fakeBookingRepo
	catalog   *fakeCatalogRepo
	customers *fakeCustomerRepo
	events    *fakeEventRepo
	feedback  *fakeFeedbackRepo
	incidents *fakeIncidentRepo
	clock     fixedClock
	svc       *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings:  newFakeBookingRepo(),
		catalog:   &fakeCatalogRepo{},
		customers: &fakeCustomerRepo{},
		events:    &fakeEventRepo{},
		feedback:  &fakeFeedbackRepo{},
		incidents: &fakeIncidentRepo{},
		clock:     fixedClock{now: time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)},
	}
	f.svc = NewService(
		f.bookings, f.catalog, f.customers, f.events,
		f.feedback, f.incidents, fakeTxManager{}, f.clock, noopLogger{},
	)
	return f
}

func storeBooking(id string, storeID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		BookingCode: "BO-" + id,
		StoreID:     storeID,
		ServiceID:   10,
		CustomerID:  42,
		Status:      status,
	}
}

func staffActor(storeID int64) domain.Actor {
	return domain.Actor{Type: domain.ActorStaff, StaffID: ptr.Ptr(int64(5)), StoreID: &storeID}
}

func TestGetByID_ScopeCheck(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusScheduled))

	got, err := f.svc.GetByID(context.Background(), b.ID, staffActor(1))
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.GetByID(context.Background(), b.ID, staffActor(2))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetByCode_NormalizesInput(t *testing.T) {
	f := newFixture(t)
	f.bookings.add(storeBooking("0001", 1, domain.StatusScheduled))

	got, err := f.svc.GetByCode(context.Background(), "  bo-0001 ", staffActor(1))
	require.NoError(t, err)
	assert.Equal(t, "BO-0001", got.BookingCode)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), "missing", staffActor(1))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTodayQueue_FiltersCurrentDay(t *testing.T) {
	f := newFixture(t)
	f.bookings.byStore = []*domain.Booking{storeBooking("0001", 1, domain.StatusScheduled)}

	queue, err := f.svc.TodayQueue(context.Background(), 1, staffActor(1))
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	// Границы дня из часов сервиса, отменённые не включаются
	require.NotNil(t, f.bookings.gotFilter)
	require.NotNil(t, f.bookings.gotFilter.From)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), *f.bookings.gotFilter.From)
	require.NotNil(t, f.bookings.gotFilter.To)
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), *f.bookings.gotFilter.To)
	assert.False(t, f.bookings.gotFilter.IncludeCancelled)
}

func TestTodayQueue_ScopeCheck(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.TodayQueue(context.Background(), 1, staffActor(2))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCustomerHistory(t *testing.T) {
	f := newFixture(t)
	f.customers.customer = &domain.Customer{ID: 42, TelegramChatID: "chat-100"}
	f.bookings.history = []*domain.Booking{storeBooking("0001", 1, domain.StatusCompleted)}

	history, err := f.svc.CustomerHistory(context.Background(), "chat-100")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCustomerHistory_UnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CustomerHistory(context.Background(), "chat-404")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestAssignConsultant_EmitsAssignedEvent(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusScheduled))
	f.catalog.consultant = &domain.Consultant{ID: 7, StoreID: 1, IsActive: true}

	err := f.svc.AssignConsultant(context.Background(), b.ID, 7, staffActor(1))
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.bookings.assigned[b.ID])
	require.Len(t, f.events.entries, 1)
	ev := f.events.entries[0]
	assert.Equal(t, domain.EventAssigned, ev.EventType)
	require.NotNil(t, ev.MetadataJSON)
	assert.Contains(t, *ev.MetadataJSON, `"consultant_id":7`)
}

func TestAssignConsultant_WrongStore(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusScheduled))
	f.catalog.consultant = &domain.Consultant{ID: 7, StoreID: 2, IsActive: true}

	err := f.svc.AssignConsultant(context.Background(), b.ID, 7, staffActor(1))
	assert.ErrorIs(t, err, ErrConsultantUnavailable)
	assert.Empty(t, f.events.entries)
}

func TestLogIncident_EmitsEvent(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusInService))

	inc, err := f.svc.LogIncident(context.Background(), &IncidentRequest{
		BookingID: b.ID,
		Category:  "equipment",
		Severity:  "low",
		Note:      "chair broke mid-service",
		Actor:     staffActor(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "inc-1", inc.ID)
	require.Len(t, f.incidents.created, 1)
	require.Len(t, f.events.entries, 1)
	assert.Equal(t, domain.EventIncidentLogged, f.events.entries[0].EventType)
}

func TestLogIncident_Validation(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusInService))

	_, err := f.svc.LogIncident(context.Background(), &IncidentRequest{
		BookingID: b.ID,
		Severity:  "low",
		Actor:     staffActor(1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitFeedback_Success(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusCompleted))
	b.ConsultantID = ptr.Ptr(int64(7))
	f.customers.customer = &domain.Customer{ID: 42, TelegramChatID: "chat-100"}

	fb, err := f.svc.SubmitFeedback(context.Background(), &FeedbackRequest{
		BookingID:      b.ID,
		CustomerChatID: "chat-100",
		Rating:         5,
	})
	require.NoError(t, err)

	// store/service/consultant денормализованы из бронирования
	assert.Equal(t, int64(1), fb.StoreID)
	assert.Equal(t, int64(10), fb.ServiceID)
	require.NotNil(t, fb.ConsultantID)
	assert.Equal(t, int64(7), *fb.ConsultantID)

	require.Len(t, f.events.entries, 1)
	ev := f.events.entries[0]
	assert.Equal(t, domain.EventFeedbackReceived, ev.EventType)
	assert.Equal(t, domain.ActorCustomer, ev.ActorType)
}

func TestSubmitFeedback_OnlyForCompleted(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusInService))
	f.customers.customer = &domain.Customer{ID: 42, TelegramChatID: "chat-100"}

	_, err := f.svc.SubmitFeedback(context.Background(), &FeedbackRequest{
		BookingID:      b.ID,
		CustomerChatID: "chat-100",
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrFeedbackNotAllowed)
}

func TestSubmitFeedback_OtherCustomersBooking(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusCompleted))
	f.customers.customer = &domain.Customer{ID: 77, TelegramChatID: "chat-200"}

	_, err := f.svc.SubmitFeedback(context.Background(), &FeedbackRequest{
		BookingID:      b.ID,
		CustomerChatID: "chat-200",
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrFeedbackNotAllowed)
}

func TestSubmitFeedback_RatingBounds(t *testing.T) {
	f := newFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.SubmitFeedback(context.Background(), &FeedbackRequest{
			BookingID:      "0001",
			CustomerChatID: "chat-100",
			Rating:         rating,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestEvents_ReturnsChronology(t *testing.T) {
	f := newFixture(t)
	b := f.bookings.add(storeBooking("0001", 1, domain.StatusCompleted))
	f.events.listed = []*domain.EventLogEntry{
		{EventType: domain.EventBooked},
		{EventType: domain.EventArrived},
		{EventType: domain.EventCompleted},
	}

	entries, err := f.svc.Events(context.Background(), b.ID, staffActor(1))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.EventBooked, entries[0].EventType)
}
