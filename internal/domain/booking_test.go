package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 16, h, m, 0, 0, time.UTC)
	}
	booking := &Booking{ScheduledStartAt: at(10, 0), ScheduledEndAt: at(10, 30)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical interval", at(10, 0), at(10, 30), true},
		{"contained", at(10, 10), at(10, 20), true},
		{"overlaps start", at(9, 45), at(10, 15), true},
		{"overlaps end", at(10, 15), at(10, 45), true},
		{"touches at start", at(9, 30), at(10, 0), false},
		{"touches at end", at(10, 30), at(11, 0), false},
		{"fully before", at(9, 0), at(9, 30), false},
		{"fully after", at(11, 0), at(11, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(time.Monday))
	assert.Equal(t, 5, WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, WeekdayIndex(time.Sunday))
}

func TestConversationStateIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	fresh := &ConversationState{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, fresh.IsExpired(now))

	stale := &ConversationState{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, stale.IsExpired(now))

	exact := &ConversationState{ExpiresAt: now}
	assert.True(t, exact.IsExpired(now))
}
