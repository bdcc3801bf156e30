// Package broker provides the hand-off intermediary between the ingestion
// pipeline and the persistence consumer: a Kafka adapter for deployments
// and an in-process channel broker for single-node runs and tests.
package broker

import (
	"context"
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
)

var (
	_ contract.Broker         = (*ChannelBroker)(nil)
	_ contract.BrokerConsumer = (*ChannelBroker)(nil)
)

// ChannelBroker is an in-process broker backed by a buffered channel.
// Publish blocks until the message is enqueued or ctx expires, which makes
// a full buffer look like a broker timeout to the pipeline, exactly the
// backpressure shape the retry policy expects.
type ChannelBroker struct {
	messages  chan domain.Message
	closeOnce sync.Once
	log       *slog.Logger
}

func NewChannelBroker(bufferSize int, log *slog.Logger) *ChannelBroker {
	return &ChannelBroker{messages: make(chan domain.Message, bufferSize), log: log}
}

func (b *ChannelBroker) Publish(ctx context.Context, msg domain.Message) error {
	select {
	case b.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *ChannelBroker) Consume(ctx context.Context, handler func(ctx context.Context, msg domain.Message) error) error {
	for {
		select {
		case <-ctx.Done():
			b.log.Debug("Stopping channel broker consumer")
			return ctx.Err()
		case msg, ok := <-b.messages:
			if !ok {
				return nil
			}
			if err := handler(ctx, msg); err != nil {
				// At-least-once: put it back for a retry instead of
				// dropping it on the floor.
				b.log.Warn("Handler failed, re-enqueueing message", "id", msg.ID, "error", err)
				select {
				case b.messages <- msg:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// Close stops accepting messages. Pending ones are still consumed.
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() { close(b.messages) })
}
