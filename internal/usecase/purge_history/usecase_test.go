package purge_history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	deleted int64
	cutoff  time.Time
}

func (f *fakeBookingRepo) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

type fakeEventRepo struct {
	deleted int64
	entries []*domain.EventLogEntry
}

func (f *fakeEventRepo) Append(_ context.Context, entry *domain.EventLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeEventRepo) DeleteOccurredBefore(_ context.Context, _ time.Time) (int64, error) {
	return f.deleted, nil
}

type fakeCountingRepo struct {
	deleted int64
}

func (f *fakeCountingRepo) DeleteCreatedBefore(_ context.Context, _ time.Time) (int64, error) {
	return f.deleted, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func elevatedActor() domain.Actor {
	return domain.Actor{
		Type:     domain.ActorStaff,
		StaffID:  ptr.Ptr(int64(99)),
		Elevated: true,
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{deleted: 12}
	events := &fakeEventRepo{deleted: 40}
	feedback := &fakeCountingRepo{deleted: 3}
	incidents := &fakeCountingRepo{deleted: 1}

	uc := NewUseCase(bookings, events, feedback, incidents, fakeTxManager{}, 30, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		OlderThanDays: 90,
		Actor:         elevatedActor(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.DeletedBookings)
	assert.Equal(t, int64(40), resp.DeletedEvents)
	assert.Equal(t, int64(3), resp.DeletedFeedback)
	assert.Equal(t, int64(1), resp.DeletedIncidents)

	// Cutoff примерно 90 дней назад
	wantCutoff := time.Now().UTC().AddDate(0, 0, -90)
	assert.WithinDuration(t, wantCutoff, bookings.cutoff, time.Minute)

	// Ровно одно событие PURGE с деталями операции
	require.Len(t, events.entries, 1)
	ev := events.entries[0]
	assert.Equal(t, domain.EventPurge, ev.EventType)
	assert.Equal(t, domain.ActorStaff, ev.ActorType)
	require.NotNil(t, ev.ActorStaffID)
	assert.Equal(t, int64(99), *ev.ActorStaffID)

	// Сводное событие не привязано ни к бронированию, ни к магазину -
	// обе ссылки обязаны оставаться пустыми
	assert.Nil(t, ev.BookingID)
	assert.Nil(t, ev.StoreID)

	require.NotNil(t, ev.MetadataJSON)
	assert.Contains(t, *ev.MetadataJSON, `"older_than_days":90`)
	assert.Contains(t, *ev.MetadataJSON, `"deleted_bookings":12`)
	assert.Contains(t, *ev.MetadataJSON, `"deleted_aged_events":40`)
}

func TestExecute_RequiresElevatedAccess(t *testing.T) {
	events := &fakeEventRepo{}
	uc := NewUseCase(&fakeBookingRepo{}, events, &fakeCountingRepo{}, &fakeCountingRepo{}, fakeTxManager{}, 30, noopLogger{})

	storeID := int64(1)
	actors := []struct {
		name  string
		actor domain.Actor
	}{
		{"scoped staff", domain.Actor{Type: domain.ActorStaff, StoreID: &storeID}},
		{"scoped manager", domain.Actor{Type: domain.ActorStaff, StoreID: &storeID, Manager: true}},
		{"customer", domain.Actor{Type: domain.ActorCustomer}},
	}

	for _, tt := range actors {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				OlderThanDays: 90,
				Actor:         tt.actor,
			})
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}

	assert.Empty(t, events.entries)
}

func TestExecute_RetentionBelowMinimum(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeEventRepo{}, &fakeCountingRepo{}, &fakeCountingRepo{}, fakeTxManager{}, 30, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		OlderThanDays: 7,
		Actor:         elevatedActor(),
	})

	assert.ErrorIs(t, err, ErrRetentionTooShort)
}

func TestExecute_InvalidDays(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeEventRepo{}, &fakeCountingRepo{}, &fakeCountingRepo{}, fakeTxManager{}, 30, noopLogger{})

	for _, days := range []int{0, -5} {
		_, err := uc.Execute(context.Background(), &Request{
			OlderThanDays: days,
			Actor:         elevatedActor(),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
