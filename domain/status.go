package domain

import "fmt"

// Status is the delivery state of a message. It only moves forward:
//
//	SENDING -> PROCESSING -> SENT_TO_KAFKA -> SAVED
//
// FAILED is reachable from any non-terminal state. SAVED and FAILED are
// terminal.
type Status string

const (
	StatusSending     Status = "SENDING"
	StatusProcessing  Status = "PROCESSING"
	StatusSentToKafka Status = "SENT_TO_KAFKA"
	StatusSaved       Status = "SAVED"
	StatusFailed      Status = "FAILED"
)

func (s Status) Terminal() bool {
	return s == StatusSaved || s == StatusFailed
}

// TransitionEvent is what happened to a message, as reported by the
// pipeline, the broker, or the persistence consumer.
type TransitionEvent string

const (
	EventSubmitted      TransitionEvent = "submitted"
	EventHandedToBroker TransitionEvent = "handedToBroker"
	EventBrokerAck      TransitionEvent = "brokerAckReceived"
	EventPersisted      TransitionEvent = "persisted"
	EventFailure        TransitionEvent = "failure"
)

// InvalidTransitionError reports a transition event that is not legal for
// the current status. It signals an ordering or programming error and is
// never swallowed by the pipeline.
type InvalidTransitionError struct {
	From  Status
	Event TransitionEvent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event %q not allowed in state %q", e.Event, e.From)
}

// target maps each non-initial event to the state it leads to.
var target = map[TransitionEvent]Status{
	EventHandedToBroker: StatusProcessing,
	EventBrokerAck:      StatusSentToKafka,
	EventPersisted:      StatusSaved,
	EventFailure:        StatusFailed,
}

// origin maps each event to the single state it may be applied from.
// EventFailure is special-cased in Transition: any non-terminal state.
var origin = map[TransitionEvent]Status{
	EventHandedToBroker: StatusSending,
	EventBrokerAck:      StatusProcessing,
	EventPersisted:      StatusSentToKafka,
}

// Transition validates and applies a lifecycle event to the current status.
// Re-delivering an event whose target state is already the current state is
// a no-op, not an error: broker and persistence layers may redeliver
// acknowledgements. Every other mismatch returns *InvalidTransitionError
// and leaves the caller's state untouched.
func Transition(current Status, ev TransitionEvent) (Status, error) {
	next, ok := target[ev]
	if !ok {
		// EventSubmitted is the initial event, never applied to an
		// existing status.
		return current, &InvalidTransitionError{From: current, Event: ev}
	}

	// Idempotent redelivery.
	if current == next {
		return current, nil
	}

	if current.Terminal() {
		return current, &InvalidTransitionError{From: current, Event: ev}
	}

	if ev == EventFailure {
		return StatusFailed, nil
	}

	if origin[ev] != current {
		return current, &InvalidTransitionError{From: current, Event: ev}
	}
	return next, nil
}
