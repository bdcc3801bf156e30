// Package event defines the domain events the pipeline and the read
// tracker emit for downstream consumers (audit, reconciliation, search
// indexing). Emission is fire-and-forget: producers never wait on sinks.
package event

import (
	"chat-relay/domain"
	"time"
)

// Type is the closed tag set identifying domain events.
type Type string

const (
	TypeMessageCreated Type = "MESSAGE_CREATED"
	TypeMessageUpdated Type = "MESSAGE_UPDATED"
	TypeMessageDeleted Type = "MESSAGE_DELETED"
)

// Envelope wraps a typed payload with its tag and emission time.
type Envelope struct {
	Type      Type
	Room      domain.RoomID
	CreatedAt time.Time
	Payload   any
}

// MessageSaved is emitted with TypeMessageCreated once a message has been
// durably persisted and reached SAVED.
type MessageSaved struct {
	Message domain.Message
}

// MessageFailed is emitted with TypeMessageUpdated when a message reaches
// FAILED, either through retry exhaustion, a confirmation deadline, or the
// watchdog sweep. Reason carries the failure cause for reconciliation.
type MessageFailed struct {
	Message domain.Message
	Reason  string
}

// ReadStateChanged is emitted with TypeMessageUpdated after a read marker
// moved and the unread count was reset for (Room, User).
type ReadStateChanged struct {
	Room        domain.RoomID
	User        domain.UserID
	Position    domain.Position
	UnreadCount uint64
}
