package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "SCHEDULED"
	StatusArrived   BookingStatus = "ARRIVED"
	StatusInService BookingStatus = "IN_SERVICE"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
	StatusCancelled BookingStatus = "CANCELLED"
)

// SourceChannel identifies where a booking originated from
const (
	ChannelTelegram = "TELEGRAM"
	ChannelConsole  = "CONSOLE"
)

// Booking represents a service appointment in a store
type Booking struct {
	ID           string // UUID
	BookingCode  string // Human-readable code, e.g. "BO-4821"
	StoreID      int64
	StationID    *int64
	ServiceID    int64
	ConsultantID *int64
	CustomerID   int64

	// ScheduledEndAt is computed from the service duration at booking time
	// and never recomputed if the service duration changes later.
	ScheduledStartAt time.Time
	ScheduledEndAt   time.Time

	Status        BookingStatus
	SourceChannel string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking is in a terminal status
func (b *Booking) IsTerminal() bool {
	return IsTerminalStatus(b.Status)
}

// Overlaps reports whether the booking's interval intersects [start, end)
// using half-open semantics: intervals that merely touch do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.ScheduledEndAt) && end.After(b.ScheduledStartAt)
}

// StoreBookingsFilter narrows booking queries for a store
type StoreBookingsFilter struct {
	StoreID          int64
	ConsultantID     *int64         // Optional consultant filter
	From             *time.Time     // Bookings whose interval ends after From
	To               *time.Time     // Bookings whose interval starts before To
	Status           *BookingStatus // Optional exact status filter
	IncludeCancelled bool           // When false, CANCELLED bookings are excluded
}
