package domain

import (
	"time"

	"github.com/bontle/BB-BookingService/pkg/types"
)

// Store represents a retail store of the chain
type Store struct {
	ID        int64
	Brand     string
	Region    string
	Name      string
	City      string
	IsActive  bool
	CreatedAt time.Time
}

// Station is a physical service point inside a store
type Station struct {
	ID       int64
	StoreID  int64
	Name     string
	IsActive bool
}

// Service is a bookable service offered by a store.
// DurationMinutes is captured into bookings at creation time; editing it later
// never changes existing bookings.
type Service struct {
	ID              int64
	StoreID         int64
	Category        string
	Name            string
	DurationMinutes int
	PriceCents      int
	Active          bool
}

// StoreHours is the operating window of a store on one weekday.
// At most one active record exists per (store, weekday); open < close.
type StoreHours struct {
	ID        int64
	StoreID   int64
	DayOfWeek int // 0=Monday .. 6=Sunday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	Active    bool
}

// Customer is a chat-bot customer
type Customer struct {
	ID               int64
	TelegramChatID   string
	DisplayFirstName *string
	CreatedAt        time.Time
}

// Consultant is a staff member bookable for appointments in a store
type Consultant struct {
	ID       int64
	StoreID  int64
	Name     string
	IsActive bool
}

// WeekdayIndex converts time.Weekday to the store_hours convention (0=Monday)
func WeekdayIndex(d time.Weekday) int {
	// time.Sunday is 0, store hours count from Monday
	return (int(d) + 6) % 7
}
