package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/repositories"
)

var _ contract.INotifier = (*RoomNotifier)(nil)

// RoomNotifier builds one RoomUpdateNotice per room participant and pushes
// it through their live connection. Delivery is best-effort: without a
// connection the notice is dropped, durable state lives in the counters
// and markers. Calling Notify redundantly only sends a slightly
// stale-then-fresh pair of notices, which consumers absorb.
type RoomNotifier struct {
	registry  contract.IRegistry
	messages  repositories.IMessageRepository
	readState repositories.IReadStateRepository
	log       *slog.Logger
}

func NewRoomNotifier(
	registry contract.IRegistry,
	messages repositories.IMessageRepository,
	readState repositories.IReadStateRepository,
	log *slog.Logger,
) *RoomNotifier {
	return &RoomNotifier{registry: registry, messages: messages, readState: readState, log: log}
}

func (n *RoomNotifier) Notify(ctx context.Context, room domain.RoomID) {
	last, err := n.messages.LatestSaved(room)
	if err != nil {
		n.log.Error("Failed to load latest message for notice", "room", room, "error", err)
		return
	}

	now := time.Now().UTC()
	for _, user := range n.registry.MembersOf(room) {
		sink, online := n.registry.SinkFor(user)
		if !online {
			continue
		}
		count, err := n.readState.UnreadCount(room, user)
		if err != nil {
			n.log.Error("Failed to read unread count for notice", "room", room, "user", user, "error", err)
			continue
		}
		notice := domain.RoomUpdateNotice{
			Room:        room,
			UnreadCount: count,
			LastMessage: last,
			At:          now,
		}
		if err := sink.Push(ctx, notice); err != nil {
			n.log.Debug(fmt.Sprintf("Notice dropped for user %d in room %d: %v", user, room, err))
		}
	}
}
