package update_booking_status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	bookingRepo "github.com/bontle/BB-BookingService/internal/infra/storage/booking"
	"github.com/bontle/BB-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	updatedTo *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ string) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ string, status domain.BookingStatus) error {
	f.updatedTo = &status
	return nil
}

type fakeEventRepo struct {
	entries []*domain.EventLogEntry
}

func (f *fakeEventRepo) Append(_ context.Context, entry *domain.EventLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func scheduledBooking() *domain.Booking {
	return &domain.Booking{
		ID:      "11111111-1111-1111-1111-111111111111",
		StoreID: 1,
		Status:  domain.StatusScheduled,
	}
}

func staffActor(storeID int64) domain.Actor {
	return domain.Actor{
		Type:    domain.ActorStaff,
		StaffID: ptr.Ptr(int64(5)),
		StoreID: &storeID,
	}
}

func managerActor(storeID int64) domain.Actor {
	a := staffActor(storeID)
	a.Manager = true
	return a
}

func elevatedActor() domain.Actor {
	return domain.Actor{
		Type:     domain.ActorStaff,
		StaffID:  ptr.Ptr(int64(99)),
		Elevated: true,
	}
}

func newUseCase(repo *fakeBookingRepo, events *fakeEventRepo) *UseCase {
	return NewUseCase(repo, events, fakeTxManager{}, noopLogger{})
}

func TestExecute_ValidTransitionEmitsOneEvent(t *testing.T) {
	repo := &fakeBookingRepo{booking: scheduledBooking()}
	events := &fakeEventRepo{}
	uc := newUseCase(repo, events)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: repo.booking.ID,
		Target:    domain.StatusArrived,
		Actor:     staffActor(1),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, resp.Previous)
	assert.Equal(t, domain.StatusArrived, resp.Status)
	require.NotNil(t, repo.updatedTo)
	assert.Equal(t, domain.StatusArrived, *repo.updatedTo)

	require.Len(t, events.entries, 1)
	ev := events.entries[0]
	assert.Equal(t, domain.EventArrived, ev.EventType)
	assert.Equal(t, domain.ActorStaff, ev.ActorType)
	require.NotNil(t, ev.ActorStaffID)
	assert.Equal(t, int64(5), *ev.ActorStaffID)
	require.NotNil(t, ev.MetadataJSON)
	assert.Contains(t, *ev.MetadataJSON, `"previous":"SCHEDULED"`)
}

func TestExecute_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      domain.BookingStatus
		wantErr error
	}{
		{"scheduled to arrived", domain.StatusScheduled, domain.StatusArrived, nil},
		{"scheduled to no-show", domain.StatusScheduled, domain.StatusNoShow, nil},
		{"scheduled to in-service skips arrival", domain.StatusScheduled, domain.StatusInService, ErrInvalidTransition},
		{"scheduled to completed", domain.StatusScheduled, domain.StatusCompleted, ErrInvalidTransition},
		{"arrived to in-service", domain.StatusArrived, domain.StatusInService, nil},
		{"arrived to no-show", domain.StatusArrived, domain.StatusNoShow, nil},
		{"arrived to completed", domain.StatusArrived, domain.StatusCompleted, ErrInvalidTransition},
		{"in-service to completed", domain.StatusInService, domain.StatusCompleted, nil},
		{"in-service to no-show", domain.StatusInService, domain.StatusNoShow, ErrInvalidTransition},
		{"completed is terminal", domain.StatusCompleted, domain.StatusArrived, ErrInvalidTransition},
		{"no-show is terminal", domain.StatusNoShow, domain.StatusArrived, ErrInvalidTransition},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusArrived, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scheduledBooking()
			b.Status = tt.from
			repo := &fakeBookingRepo{booking: b}
			events := &fakeEventRepo{}
			uc := newUseCase(repo, events)

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: b.ID,
				Target:    tt.to,
				Actor:     staffActor(1),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, events.entries)
				assert.Nil(t, repo.updatedTo)
			} else {
				require.NoError(t, err)
				assert.Len(t, events.entries, 1)
			}
		})
	}
}

func TestExecute_InvalidTransitionNamesBothStatuses(t *testing.T) {
	repo := &fakeBookingRepo{booking: scheduledBooking()}
	uc := newUseCase(repo, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: repo.booking.ID,
		Target:    domain.StatusInService,
		Actor:     staffActor(1),
	})

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "SCHEDULED")
	assert.Contains(t, err.Error(), "IN_SERVICE")
}

func TestExecute_CancelBypassesTable(t *testing.T) {
	// Отмена доступна из любого нетерминального статуса, хотя CANCELLED
	// не является целью ни одного перехода таблицы
	for _, from := range []domain.BookingStatus{
		domain.StatusScheduled, domain.StatusArrived, domain.StatusInService,
	} {
		t.Run(string(from), func(t *testing.T) {
			b := scheduledBooking()
			b.Status = from
			repo := &fakeBookingRepo{booking: b}
			events := &fakeEventRepo{}
			uc := newUseCase(repo, events)

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: b.ID,
				Target:    domain.StatusCancelled,
				Actor:     managerActor(1),
			})
			require.NoError(t, err)

			require.Len(t, events.entries, 1)
			assert.Equal(t, domain.EventCancelled, events.entries[0].EventType)
		})
	}
}

func TestExecute_CancelRequiresPrivilege(t *testing.T) {
	// Актор в области магазина, но без привилегии отмены: Unauthorized,
	// а не InvalidTransition
	repo := &fakeBookingRepo{booking: scheduledBooking()}
	uc := newUseCase(repo, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: repo.booking.ID,
		Target:    domain.StatusCancelled,
		Actor:     staffActor(1),
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_CancelTerminalFails(t *testing.T) {
	b := scheduledBooking()
	b.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{booking: b}
	uc := newUseCase(repo, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Target:    domain.StatusCancelled,
		Actor:     elevatedActor(),
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ElevatedActorCancelsAnywhere(t *testing.T) {
	repo := &fakeBookingRepo{booking: scheduledBooking()}
	events := &fakeEventRepo{}
	uc := newUseCase(repo, events)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: repo.booking.ID,
		Target:    domain.StatusCancelled,
		Actor:     elevatedActor(),
	})
	require.NoError(t, err)
	assert.Len(t, events.entries, 1)
}

func TestExecute_ActorScopedToOtherStore(t *testing.T) {
	repo := &fakeBookingRepo{booking: scheduledBooking()} // store 1
	uc := newUseCase(repo, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: repo.booking.ID,
		Target:    domain.StatusArrived,
		Actor:     staffActor(2),
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "22222222-2222-2222-2222-222222222222",
		Target:    domain.StatusArrived,
		Actor:     elevatedActor(),
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{booking: scheduledBooking()}, &fakeEventRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"empty booking id", &Request{Target: domain.StatusArrived, Actor: elevatedActor()}},
		{"unknown status", &Request{BookingID: "x", Target: "TELEPORTED", Actor: elevatedActor()}},
		{"scheduled as target", &Request{BookingID: "x", Target: domain.StatusScheduled, Actor: elevatedActor()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
