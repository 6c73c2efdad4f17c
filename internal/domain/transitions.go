package domain

// validTransitions is the booking status transition table.
// CANCELLED is deliberately absent from every target set: cancellation is an
// authorization-gated side rule checked before this table, not part of it.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusScheduled: {StatusArrived, StatusNoShow},
	StatusArrived:   {StatusInService, StatusNoShow},
	StatusInService: {StatusCompleted},
	StatusCompleted: {},
	StatusNoShow:    {},
	StatusCancelled: {},
}

// IsValidStatus returns true if s is a known booking status
func IsValidStatus(s BookingStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminalStatus returns true if the status has no outgoing transitions
func IsTerminalStatus(s BookingStatus) bool {
	targets, ok := validTransitions[s]
	return ok && len(targets) == 0
}

// CanTransition reports whether current -> target is allowed by the table.
// The cancellation bypass is NOT covered here.
func CanTransition(current, target BookingStatus) bool {
	for _, t := range validTransitions[current] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTargets returns the allowed targets for the given status
func TransitionTargets(s BookingStatus) []BookingStatus {
	targets := validTransitions[s]
	out := make([]BookingStatus, len(targets))
	copy(out, targets)
	return out
}
