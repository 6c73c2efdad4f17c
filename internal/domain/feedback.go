package domain

import "time"

// Feedback is a customer rating left after a visit.
// Store, service and consultant ids are denormalized so analytics survive
// a booking purge until the feedback itself ages out.
type Feedback struct {
	ID           string // UUID
	BookingID    string
	Rating       int // 1..5
	Comment      *string
	StoreID      int64
	ServiceID    int64
	ConsultantID *int64
	CreatedAt    time.Time
}

// Incident is a staff-reported problem tied to a booking
type Incident struct {
	ID          string // UUID
	BookingID   string
	StaffUserID *int64
	Category    string
	Severity    string
	Note        string
	CreatedAt   time.Time
}
