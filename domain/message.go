// Package domain contains core concepts of the chat delivery system.
// This file defines Message entities and identifier types.
// Messages are created by the ingestion pipeline and become visible to
// read-tracking only once their status reaches SAVED.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type RoomID int

type UserID int64

// Message represents a chat message moving through the delivery pipeline.
// Identity fields never change after creation; only Status advances,
// and only along the transitions defined in status.go.
type Message struct {
	ID        uuid.UUID
	Room      RoomID
	Sender    UserID
	Content   string
	CreatedAt time.Time
	Status    Status
}

// Position returns the storage ordering key of the message inside its room.
func (m Message) Position() Position {
	return NewPosition(m.CreatedAt, m.ID)
}
