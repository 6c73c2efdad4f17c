package domain

// Actor is the identity performing an operation, described by capabilities
// rather than a role hierarchy. A scoped actor is tied to one store; an
// elevated actor spans all stores (including cancel and purge).
type Actor struct {
	Type ActorType

	// StaffID is set for staff actors and recorded in the event log
	StaffID *int64

	// StoreID is the store the actor is scoped to (nil for elevated actors
	// and for customers, whose scope is per-booking)
	StoreID *int64

	// Manager grants cancellation rights within the actor's store scope
	Manager bool

	// Elevated grants access to every store, cancellation and purge
	Elevated bool
}

// ScopedTo reports whether the actor may act on the given store
func (a Actor) ScopedTo(storeID int64) bool {
	if a.Elevated {
		return true
	}
	return a.StoreID != nil && *a.StoreID == storeID
}

// CanCancel reports whether the actor may cancel a booking in the given store
func (a Actor) CanCancel(storeID int64) bool {
	if a.Elevated {
		return true
	}
	return a.Manager && a.ScopedTo(storeID)
}

// CanPurge reports whether the actor may run the retention purge
func (a Actor) CanPurge() bool {
	return a.Elevated
}
