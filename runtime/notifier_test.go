package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/repositories"
	"chat-relay/sink"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRoomNotifier_Pushes_Only_To_Online_Members(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	messages := repositories.NewMessageRepository(db, log, nil)
	readState := repositories.NewReadStateRepository(db, log, 0)
	registry := NewRegistry()
	notifier := NewRoomNotifier(registry, messages, readState, log)

	room := domain.RoomID(1)
	saved := domain.Message{
		ID:        uuid.New(),
		Room:      room,
		Sender:    1,
		Content:   "latest",
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusSaved,
	}
	req.NoError(messages.StoreMessage(saved))

	// Given one online and one offline member
	online := domain.UserID(2)
	offline := domain.UserID(3)
	registry.Join(online, room)
	registry.Join(offline, room)
	connection := sink.NewConnectionSink(4)
	registry.Attach(online, connection)
	req.NoError(readState.SetUnreadCount(room, online, 5))

	// When the room is notified
	notifier.Notify(context.Background(), room)

	// Then the online member receives one notice carrying their own count
	select {
	case notice := <-connection.Notices:
		req.Equal(room, notice.Room)
		req.Equal(uint64(5), notice.UnreadCount)
		req.NotNil(notice.LastMessage)
		req.Equal(saved.ID, notice.LastMessage.ID)
	default:
		req.Fail("Expected a notice for the online member")
	}
	req.Empty(connection.Notices)
}

func TestRoomNotifier_Empty_Room_Notice(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	messages := repositories.NewMessageRepository(db, log, nil)
	readState := repositories.NewReadStateRepository(db, log, 0)
	registry := NewRegistry()
	notifier := NewRoomNotifier(registry, messages, readState, log)

	room := domain.RoomID(1)
	user := domain.UserID(2)
	registry.Join(user, room)
	connection := sink.NewConnectionSink(4)
	registry.Attach(user, connection)

	// A room with no saved message still produces a notice, without a last message
	notifier.Notify(context.Background(), room)

	select {
	case notice := <-connection.Notices:
		req.Equal(uint64(0), notice.UnreadCount)
		req.Nil(notice.LastMessage)
	default:
		req.Fail("Expected a notice even for an empty room")
	}
}
