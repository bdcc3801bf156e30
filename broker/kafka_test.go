package broker

import (
	"encoding/json"
	"testing"
	"time"

	"chat-relay/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestKafka_Wire_Roundtrip(t *testing.T) {
	req := require.New(t)

	msg := domain.Message{
		ID:        uuid.New(),
		Room:      42,
		Sender:    7,
		Content:   "over the wire",
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusSentToKafka,
	}

	wire := toWire(msg)
	req.Equal(msg.ID.String(), wire.ID)
	req.Equal(42, wire.Room)
	req.Equal(int64(7), wire.Sender)

	decoded, err := fromWire(mustMarshal(t, wire))
	req.NoError(err)
	req.Equal(msg.ID, decoded.ID)
	req.Equal(msg.Room, decoded.Room)
	req.Equal(msg.Sender, decoded.Sender)
	req.Equal(msg.Content, decoded.Content)
	req.Equal(msg.Status, decoded.Status)
	req.True(msg.CreatedAt.Equal(decoded.CreatedAt))
}

func TestKafka_FromWire_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := fromWire([]byte("not json"))
	req.Error(err)

	// Valid JSON, invalid message id
	_, err = fromWire([]byte(`{"id":"nope","roomId":1,"senderId":2}`))
	req.Error(err)
}

func TestKafka_Room_Partition_Key_Is_Stable(t *testing.T) {
	req := require.New(t)

	// All messages of one room must land on one partition
	req.Equal(roomKey(42), roomKey(42))
	req.NotEqual(roomKey(42), roomKey(43))
}

func mustMarshal(t *testing.T, w wireMessage) []byte {
	t.Helper()
	value, err := json.Marshal(w)
	require.NoError(t, err)
	return value
}
