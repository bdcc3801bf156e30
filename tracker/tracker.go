package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/repositories"

	"github.com/google/uuid"
)

var _ contract.IReadTracker = (*ReadTracker)(nil)

// ReadTracker applies read acknowledgements against stored message state
// and keeps the unread counter aligned with the read marker:
//
//	unread(room, user) == saved messages after the marker not authored by user
//
// Counts are amortized (incremented on delivery, recomputed on marker
// moves) rather than recounted on every operation.
type ReadTracker struct {
	locks     *keyedLock
	messages  repositories.IMessageRepository
	readState repositories.IReadStateRepository
	notifier  contract.INotifier
	emitter   contract.Emitter
	log       *slog.Logger
}

func NewReadTracker(
	messages repositories.IMessageRepository,
	readState repositories.IReadStateRepository,
	notifier contract.INotifier,
	emitter contract.Emitter,
	log *slog.Logger,
) *ReadTracker {
	return &ReadTracker{
		locks:     newKeyedLock(),
		messages:  messages,
		readState: readState,
		notifier:  notifier,
		emitter:   emitter,
		log:       log,
	}
}

// MarkMessageAsRead advances the user's marker in the message's room to at
// least that message's position. Reading an in-flight message is
// meaningless, so a non-SAVED status makes this a silent no-op rather than
// an error. An unknown message id is surfaced to the caller.
func (t *ReadTracker) MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, user domain.UserID) error {
	msg, err := t.messages.MessageByID(messageID)
	if err != nil {
		return err
	}
	if msg.Status != domain.StatusSaved {
		t.log.Debug(fmt.Sprintf("Ignoring read ack for in-flight message %s (status %s)", messageID, msg.Status))
		return nil
	}

	room := msg.Room
	pos := msg.Position()

	t.locks.lock(room, user)
	advanced, count, err := t.advanceMarker(room, user, pos)
	t.locks.unlock(room, user)
	if err != nil {
		return err
	}
	if !advanced {
		// The marker was already at or past this message.
		return nil
	}

	t.emitter.Emit(ctx, event.TypeMessageUpdated, room, event.ReadStateChanged{
		Room:        room,
		User:        user,
		Position:    pos,
		UnreadCount: count,
	})
	t.notifier.Notify(ctx, room)
	return nil
}

// MarkAllMessagesAsRead moves the marker to the latest SAVED message of the
// room and resets the unread count to zero. The command's RequestID is an
// idempotency token: a replay for the same (room, user) is detected inside
// the critical section and treated as a successful no-op, so side effects
// are never double-applied.
func (t *ReadTracker) MarkAllMessagesAsRead(ctx context.Context, cmd domain.MarkAllReadCommand) error {
	room := cmd.RoomID()
	user := domain.UserID(cmd.User)

	t.locks.lock(room, user)
	applied, pos, err := t.markAllLocked(room, user, cmd.RequestID)
	t.locks.unlock(room, user)
	if err != nil {
		return err
	}
	if !applied {
		t.log.Debug(fmt.Sprintf("Duplicate request %q for room %d user %d, already applied", cmd.RequestID, room, user))
		return nil
	}

	t.emitter.Emit(ctx, event.TypeMessageUpdated, room, event.ReadStateChanged{
		Room:     room,
		User:     user,
		Position: pos,
	})
	t.notifier.Notify(ctx, room)
	return nil
}

// IncrementUnreadCount bumps the unread counter of one participant. It is
// invoked by the ingestion pipeline for every SAVED message, once per room
// participant other than the sender. Exposed for administrative correction
// as well.
func (t *ReadTracker) IncrementUnreadCount(_ context.Context, room domain.RoomID, user domain.UserID) error {
	t.locks.lock(room, user)
	defer t.locks.unlock(room, user)

	count, err := t.readState.UnreadCount(room, user)
	if err != nil {
		return err
	}
	return t.readState.SetUnreadCount(room, user, count+1)
}

// UnreadCount reads the current counter value. No lock needed: a read
// concurrent with a serialized mutation sees either the old or the new
// value, both of which were valid.
func (t *ReadTracker) UnreadCount(room domain.RoomID, user domain.UserID) (uint64, error) {
	return t.readState.UnreadCount(room, user)
}

// advanceMarker moves the marker forward to pos if pos is later, then
// recomputes the unread count from stored messages. Must run under the
// (room, user) lock.
func (t *ReadTracker) advanceMarker(room domain.RoomID, user domain.UserID, pos domain.Position) (bool, uint64, error) {
	marker, found, err := t.readState.Marker(room, user)
	if err != nil {
		return false, 0, err
	}
	if found && !pos.After(marker.Position) {
		return false, 0, nil
	}

	if err := t.readState.SetMarker(domain.ReadMarker{
		Room:     room,
		User:     user,
		Position: pos,
		ReadAt:   time.Now().UTC(),
	}); err != nil {
		return false, 0, err
	}

	count, err := t.messages.CountUnreadAfter(room, pos, user)
	if err != nil {
		return false, 0, err
	}
	if err := t.readState.SetUnreadCount(room, user, count); err != nil {
		return false, 0, err
	}
	return true, count, nil
}

// markAllLocked claims the request token and resets marker plus counter.
// Must run under the (room, user) lock so the token check and the count
// reset form one atomic step with respect to concurrent increments.
func (t *ReadTracker) markAllLocked(room domain.RoomID, user domain.UserID, requestID string) (bool, domain.Position, error) {
	claimed, err := t.readState.ClaimRequest(room, user, requestID)
	if err != nil {
		return false, "", err
	}
	if !claimed {
		return false, "", nil
	}

	var pos domain.Position
	latest, err := t.messages.LatestSaved(room)
	if err != nil {
		return false, "", err
	}
	if latest != nil {
		pos = latest.Position()
		marker, found, err := t.readState.Marker(room, user)
		if err != nil {
			return false, "", err
		}
		if !found || pos.After(marker.Position) {
			if err := t.readState.SetMarker(domain.ReadMarker{
				Room:     room,
				User:     user,
				Position: pos,
				ReadAt:   time.Now().UTC(),
			}); err != nil {
				return false, "", err
			}
		}
	}

	if err := t.readState.SetUnreadCount(room, user, 0); err != nil {
		return false, "", err
	}
	return true, pos, nil
}
