// Package sink contains event and notice consumers: the audit log sink
// fed by the fanout worker, and the buffered connection sink behind each
// live websocket.
package sink

import (
	"context"
	"log/slog"

	"chat-relay/domain/event"
)

// AuditSink writes every emitted domain event to the structured log. It is
// the default permanent consumer of the emission port; search indexing or
// real audit pipelines would register alongside it.
type AuditSink struct {
	log *slog.Logger
}

func NewAuditSink(log *slog.Logger) AuditSink {
	return AuditSink{log: log}
}

func (a AuditSink) Consume(_ context.Context, e event.Envelope) error {
	switch payload := e.Payload.(type) {
	case event.MessageSaved:
		a.log.Info("Message saved",
			"type", e.Type, "room", e.Room, "id", payload.Message.ID, "sender", payload.Message.Sender)
	case event.MessageFailed:
		a.log.Warn("Message failed",
			"type", e.Type, "room", e.Room, "id", payload.Message.ID, "reason", payload.Reason)
	case event.ReadStateChanged:
		a.log.Info("Read state changed",
			"type", e.Type, "room", e.Room, "user", payload.User, "unread", payload.UnreadCount)
	default:
		a.log.Debug("Unhandled event payload", "type", e.Type, "room", e.Room)
	}
	return nil
}
