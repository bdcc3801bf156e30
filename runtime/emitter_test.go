package runtime

import (
	"context"
	"log/slog"
	"testing"

	"chat-relay/domain/event"

	"github.com/stretchr/testify/require"
)

func TestChannelEmitter_Delivers_To_Channel(t *testing.T) {
	req := require.New(t)
	emitter := NewChannelEmitter(2, slog.Default())

	emitter.Emit(context.Background(), event.TypeMessageCreated, 1, event.MessageSaved{})

	envelope := <-emitter.Events()
	req.Equal(event.TypeMessageCreated, envelope.Type)
	req.Equal(1, int(envelope.Room))
	req.IsType(event.MessageSaved{}, envelope.Payload)
	req.False(envelope.CreatedAt.IsZero())
}

func TestChannelEmitter_Drops_When_Full(t *testing.T) {
	req := require.New(t)
	emitter := NewChannelEmitter(1, slog.Default())
	ctx := context.Background()

	// Emit never blocks, even with nobody draining
	emitter.Emit(ctx, event.TypeMessageCreated, 1, event.MessageSaved{})
	emitter.Emit(ctx, event.TypeMessageUpdated, 1, event.MessageFailed{})

	req.Len(emitter.Events(), 1)
}
