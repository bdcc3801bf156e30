//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-relay/domain"
	"chat-relay/domain/event"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Broker hands a message to an asynchronous intermediary with at-least-once
// delivery toward the persistence consumer. A nil return is the broker ack;
// timeouts travel through ctx.
type Broker interface {
	Publish(ctx context.Context, msg domain.Message) error
}

// BrokerConsumer is the downstream side of the broker port: it feeds each
// delivered message to the handler until ctx is canceled. Redeliveries are
// expected (at-least-once), handlers must stay idempotent.
type BrokerConsumer interface {
	Consume(ctx context.Context, handler func(ctx context.Context, msg domain.Message) error) error
}

// Emitter publishes domain events to downstream consumers. Fire-and-forget:
// implementations must never block the caller on a slow sink.
type Emitter interface {
	Emit(ctx context.Context, t event.Type, room domain.RoomID, payload any)
}

type EventSink interface {
	Consume(ctx context.Context, e event.Envelope) error
}

// NoticeSink is a participant's live connection. Push either delivers or
// reports that the notice was dropped; notices are ephemeral so neither
// outcome is retried.
type NoticeSink interface {
	Push(ctx context.Context, n domain.RoomUpdateNotice) error
}

// IRegistry tracks room membership and live connections separately:
// a member without an open connection still accrues unread counts,
// while notices only go to attached sinks.
type IRegistry interface {
	Join(user domain.UserID, room domain.RoomID)
	Leave(user domain.UserID, room domain.RoomID)
	Attach(user domain.UserID, sink NoticeSink)
	Detach(user domain.UserID)
	MembersOf(room domain.RoomID) []domain.UserID
	IsMember(user domain.UserID, room domain.RoomID) bool
	SinkFor(user domain.UserID) (NoticeSink, bool)
}

// IPipeline drives a submitted message through its delivery lifecycle.
type IPipeline interface {
	Submit(ctx context.Context, cmd domain.SubmitMessageCommand) (domain.Message, error)
	Confirm(id uuid.UUID)
	Status(id uuid.UUID) (domain.Message, error)
}

// IReadTracker applies read acknowledgements and keeps unread counts
// consistent with read markers.
type IReadTracker interface {
	MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, user domain.UserID) error
	MarkAllMessagesAsRead(ctx context.Context, cmd domain.MarkAllReadCommand) error
	IncrementUnreadCount(ctx context.Context, room domain.RoomID, user domain.UserID) error
}

// INotifier recomputes and pushes room update notices. Safe to re-invoke.
type INotifier interface {
	Notify(ctx context.Context, room domain.RoomID)
}
