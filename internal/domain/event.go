package domain

import "time"

// EventType classifies an event log entry
type EventType string

const (
	EventBooked           EventType = "BOOKED"
	EventRescheduled      EventType = "RESCHEDULED"
	EventCancelled        EventType = "CANCELLED"
	EventArrived          EventType = "ARRIVED"
	EventInService        EventType = "IN_SERVICE"
	EventCompleted        EventType = "COMPLETED"
	EventNoShow           EventType = "NO_SHOW"
	EventAssigned         EventType = "ASSIGNED"
	EventIncidentLogged   EventType = "INCIDENT_LOGGED"
	EventFeedbackReceived EventType = "FEEDBACK_RECEIVED"
	EventPurge            EventType = "PURGE"
)

// ActorType identifies who performed an action
type ActorType string

const (
	ActorSystem   ActorType = "system"
	ActorStaff    ActorType = "staff"
	ActorCustomer ActorType = "customer"
)

// EventLogEntry is an append-only audit record.
// Entries are never mutated; they are only appended and bulk-deleted by the
// retention purge together with the bookings they reference.
type EventLogEntry struct {
	ID           string // UUID
	BookingID    *string
	StoreID      *int64
	EventType    EventType
	ActorType    ActorType
	ActorStaffID *int64
	OccurredAt   time.Time
	MetadataJSON *string
}

// statusEvents maps a transition target status to the event it emits.
// SCHEDULED is never a transition target after creation (creation emits BOOKED).
var statusEvents = map[BookingStatus]EventType{
	StatusArrived:   EventArrived,
	StatusInService: EventInService,
	StatusCompleted: EventCompleted,
	StatusNoShow:    EventNoShow,
	StatusCancelled: EventCancelled,
}

// EventTypeForStatus returns the event type emitted when a booking moves to
// the given status
func EventTypeForStatus(s BookingStatus) (EventType, bool) {
	ev, ok := statusEvents[s]
	return ev, ok
}
