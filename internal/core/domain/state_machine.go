package domain

// The transition table is data, not behavior: legality checks and the
// auto-advance step stay pure and trivially testable.

// escapeStates are reachable from every non-terminal state.
var escapeStates = []TransactionState{StateRejected, StateCancelled, StateTimeout}

// forwardEdges lists the non-escape successors of each non-terminal state.
var forwardEdges = map[TransactionState][]TransactionState{
	StateSubmitted:            {StatePendingSignature, StatePendingAuthorization},
	StatePendingSignature:     {StatePendingAuthorization, StateQueued},
	StatePendingAuthorization: {StateQueued},
	StateQueued:               {StateBroadcasting},
	StateBroadcasting:         {StateConfirming, StateFailed},
	StateConfirming:           {StateCompleted, StateFailed},
}

// autoSuccessor is the single forward-progress step the auto-transition
// driver takes from each non-terminal state.
var autoSuccessor = map[TransactionState]TransactionState{
	StateSubmitted:            StatePendingAuthorization,
	StatePendingSignature:     StateQueued,
	StatePendingAuthorization: StateQueued,
	StateQueued:               StateBroadcasting,
	StateBroadcasting:         StateConfirming,
	StateConfirming:           StateCompleted,
}

// IsTerminalState reports whether a state has no outgoing transitions.
func IsTerminalState(s TransactionState) bool {
	switch s {
	case StateCompleted, StateFailed, StateRejected, StateCancelled, StateTimeout:
		return true
	}
	return false
}

// IsValidState reports whether s is a known transaction state.
func IsValidState(s TransactionState) bool {
	if IsTerminalState(s) {
		return true
	}
	_, ok := forwardEdges[s]
	return ok
}

// CanTransition reports whether target is reachable from current. A
// transition to the current state is an idempotent no-op and is allowed.
func CanTransition(current, target TransactionState) bool {
	if current == target {
		return true
	}
	if IsTerminalState(current) {
		return false
	}
	for _, s := range forwardEdges[current] {
		if s == target {
			return true
		}
	}
	for _, s := range escapeStates {
		if s == target {
			return true
		}
	}
	return false
}

// NextAutoState returns the forward-progress successor the auto-transition
// driver should move to, or false for terminal states.
func NextAutoState(current TransactionState) (TransactionState, bool) {
	next, ok := autoSuccessor[current]
	return next, ok
}
