package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		current BookingStatus
		target  BookingStatus
		want    bool
	}{
		{"scheduled to arrived", StatusScheduled, StatusArrived, true},
		{"scheduled to no-show", StatusScheduled, StatusNoShow, true},
		{"scheduled to in-service skips arrival", StatusScheduled, StatusInService, false},
		{"scheduled to completed", StatusScheduled, StatusCompleted, false},
		{"arrived to in-service", StatusArrived, StatusInService, true},
		{"arrived to no-show", StatusArrived, StatusNoShow, true},
		{"arrived to completed", StatusArrived, StatusCompleted, false},
		{"in-service to completed", StatusInService, StatusCompleted, true},
		{"in-service to no-show", StatusInService, StatusNoShow, false},
		{"completed is terminal", StatusCompleted, StatusArrived, false},
		{"no-show is terminal", StatusNoShow, StatusArrived, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.current, tt.target))
		})
	}
}

func TestCanTransition_CancellationNeverInTable(t *testing.T) {
	// Отмена - авторизационное правило вне таблицы переходов
	for _, s := range []BookingStatus{
		StatusScheduled, StatusArrived, StatusInService,
		StatusCompleted, StatusNoShow, StatusCancelled,
	} {
		assert.False(t, CanTransition(s, StatusCancelled), "from %s", s)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusNoShow))
	assert.True(t, IsTerminalStatus(StatusCancelled))

	assert.False(t, IsTerminalStatus(StatusScheduled))
	assert.False(t, IsTerminalStatus(StatusArrived))
	assert.False(t, IsTerminalStatus(StatusInService))
	assert.False(t, IsTerminalStatus(BookingStatus("UNKNOWN")))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusScheduled))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.False(t, IsValidStatus(BookingStatus("")))
	assert.False(t, IsValidStatus(BookingStatus("DELETED")))
}

func TestTransitionTargets_ReturnsCopy(t *testing.T) {
	targets := TransitionTargets(StatusScheduled)
	assert.ElementsMatch(t, []BookingStatus{StatusArrived, StatusNoShow}, targets)

	targets[0] = StatusCompleted
	assert.ElementsMatch(t, []BookingStatus{StatusArrived, StatusNoShow}, TransitionTargets(StatusScheduled))
}
