package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Position locates a message inside a room's timeline. It is the suffix of
// the storage key: a 19-digit zero padded nanosecond timestamp followed by
// the message UUID, so positions compare chronologically through plain
// string comparison.
type Position string

func NewPosition(at time.Time, id uuid.UUID) Position {
	return Position(fmt.Sprintf("%019d:%s", at.UnixNano(), id))
}

// After reports whether p is strictly later than other in the room timeline.
func (p Position) After(other Position) bool {
	return p > other
}

// ReadMarker records how far a user has acknowledged reading in a room.
// A marker never moves backward.
type ReadMarker struct {
	Room     RoomID
	User     UserID
	Position Position
	ReadAt   time.Time
}

// RoomUpdateNotice is a derived, read-only projection pushed to a live
// connection after a message lands or a read marker moves. It is never
// stored: resending or recomputing it is harmless to consumers.
type RoomUpdateNotice struct {
	Room        RoomID    `json:"roomId"`
	UnreadCount uint64    `json:"unreadCount"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	At          time.Time `json:"timestamp"`
}
