package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func storeID(id int64) *int64 {
	return &id
}

func TestActorScopedTo(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		store int64
		want  bool
	}{
		{"scoped staff own store", Actor{Type: ActorStaff, StoreID: storeID(1)}, 1, true},
		{"scoped staff other store", Actor{Type: ActorStaff, StoreID: storeID(1)}, 2, false},
		{"elevated spans all stores", Actor{Type: ActorStaff, Elevated: true}, 7, true},
		{"no store id", Actor{Type: ActorCustomer}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actor.ScopedTo(tt.store))
		})
	}
}

func TestActorCanCancel(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		store int64
		want  bool
	}{
		{"manager in own store", Actor{Type: ActorStaff, StoreID: storeID(1), Manager: true}, 1, true},
		{"manager in other store", Actor{Type: ActorStaff, StoreID: storeID(1), Manager: true}, 2, false},
		{"scoped staff without manager", Actor{Type: ActorStaff, StoreID: storeID(1)}, 1, false},
		{"elevated anywhere", Actor{Type: ActorStaff, Elevated: true}, 9, true},
		{"customer", Actor{Type: ActorCustomer}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actor.CanCancel(tt.store))
		})
	}
}

func TestActorCanPurge(t *testing.T) {
	assert.True(t, Actor{Type: ActorStaff, Elevated: true}.CanPurge())

	// Manager прав на purge не даёт - только elevated
	assert.False(t, Actor{Type: ActorStaff, StoreID: storeID(1), Manager: true}.CanPurge())
	assert.False(t, Actor{Type: ActorStaff, StoreID: storeID(1)}.CanPurge())
	assert.False(t, Actor{Type: ActorCustomer}.CanPurge())
}
