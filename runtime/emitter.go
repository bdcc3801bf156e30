package runtime

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
)

var _ contract.Emitter = (*ChannelEmitter)(nil)

// ChannelEmitter decouples emission points from consumers through a
// buffered channel drained by the fanout worker. Emit never blocks: when
// the buffer is full the event is dropped with a debug log, matching the
// fire-and-forget contract of the emission port.
type ChannelEmitter struct {
	events chan event.Envelope
	log    *slog.Logger
}

func NewChannelEmitter(bufferSize int, log *slog.Logger) *ChannelEmitter {
	return &ChannelEmitter{events: make(chan event.Envelope, bufferSize), log: log}
}

func (e *ChannelEmitter) Emit(_ context.Context, t event.Type, room domain.RoomID, payload any) {
	envelope := event.Envelope{
		Type:      t,
		Room:      room,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
	select {
	case e.events <- envelope:
	default:
		e.log.Debug("Event channel full, dropping event", "type", t, "room", room)
	}
}

// Events exposes the channel for the fanout worker.
func (e *ChannelEmitter) Events() chan event.Envelope {
	return e.events
}
