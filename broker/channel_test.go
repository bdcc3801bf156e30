package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-relay/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestChannelBroker_Publish_Then_Consume(t *testing.T) {
	req := require.New(t)
	b := NewChannelBroker(4, slog.Default())

	msg := domain.Message{ID: uuid.New(), Room: 1, Sender: 2, Content: "pass me along", CreatedAt: time.Now().UTC()}
	req.NoError(b.Publish(context.Background(), msg))

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan domain.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- b.Consume(ctx, func(_ context.Context, m domain.Message) error {
			received <- m
			return nil
		})
	}()

	select {
	case m := <-received:
		req.Equal(msg.ID, m.ID)
		req.Equal(msg.Content, m.Content)
	case <-time.After(1 * time.Second):
		req.Fail("Message was not consumed in time")
	}

	cancel()
	req.ErrorIs(<-done, context.Canceled)
}

func TestChannelBroker_Full_Buffer_Times_Out(t *testing.T) {
	req := require.New(t)
	b := NewChannelBroker(1, slog.Default())

	msg := domain.Message{ID: uuid.New(), Room: 1, Sender: 2, Content: "fill"}
	req.NoError(b.Publish(context.Background(), msg))

	// A full buffer with no consumer looks like a broker timeout
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := b.Publish(ctx, msg)
	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestChannelBroker_ReEnqueues_On_Handler_Error(t *testing.T) {
	req := require.New(t)
	b := NewChannelBroker(4, slog.Default())

	msg := domain.Message{ID: uuid.New(), Room: 1, Sender: 2, Content: "try again"}
	req.NoError(b.Publish(context.Background(), msg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	deliveries := 0
	handled := make(chan struct{})
	go func() {
		_ = b.Consume(ctx, func(_ context.Context, m domain.Message) error {
			mu.Lock()
			deliveries++
			count := deliveries
			mu.Unlock()
			if count == 1 {
				return errors.New("transient handler failure")
			}
			close(handled)
			return nil
		})
	}()

	// At-least-once: the failed delivery comes back
	select {
	case <-handled:
	case <-time.After(1 * time.Second):
		req.Fail("Message was not redelivered after handler failure")
	}

	mu.Lock()
	defer mu.Unlock()
	req.Equal(2, deliveries)
}

func TestChannelBroker_Close_Drains_Pending(t *testing.T) {
	req := require.New(t)
	b := NewChannelBroker(4, slog.Default())

	msg := domain.Message{ID: uuid.New(), Room: 1, Sender: 2, Content: "last one"}
	req.NoError(b.Publish(context.Background(), msg))
	b.Close()
	// Close is idempotent
	b.Close()

	received := 0
	err := b.Consume(context.Background(), func(_ context.Context, m domain.Message) error {
		received++
		return nil
	})
	req.NoError(err)
	req.Equal(1, received)
}
