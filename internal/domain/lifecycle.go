package domain

// LifecycleState covers the whole booking flow: the pre-confirmation draft
// states and the persisted booking statuses share one transition table.
type LifecycleState string

const (
	StateSearching        LifecycleState = "searching"
	StateSeatHeld         LifecycleState = "seat-held"
	StatePassengerEntered LifecycleState = "passenger-entered"
	StateConfirmed        LifecycleState = "confirmed"
	StateCheckedIn        LifecycleState = "checked-in"
	StateBoarded          LifecycleState = "boarded"
	StateCompleted        LifecycleState = "completed"
	StateCancelled        LifecycleState = "cancelled"
)

// transitions is the exhaustive forward graph. Cancellation is handled
// separately: it is reachable from every non-terminal state.
var transitions = map[LifecycleState][]LifecycleState{
	StateSearching:        {StateSeatHeld},
	StateSeatHeld:         {StatePassengerEntered},
	StatePassengerEntered: {StateConfirmed},
	StateConfirmed:        {StateCheckedIn},
	StateCheckedIn:        {StateBoarded},
	StateBoarded:          {StateCompleted},
	StateCompleted:        {},
	StateCancelled:        {},
}

func (s LifecycleState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// CanTransition reports whether from -> to is a legal step. Skipping states
// is not allowed; every booking passes through each operational state.
func CanTransition(from, to LifecycleState) bool {
	if to == StateCancelled {
		return !from.Terminal()
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextOperational returns the single forward step from a post-confirmation
// status, or "" when the state has no forward step.
func NextOperational(from LifecycleState) LifecycleState {
	next, ok := transitions[from]
	if !ok || len(next) == 0 {
		return ""
	}
	return next[0]
}
