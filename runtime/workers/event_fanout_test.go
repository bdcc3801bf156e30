package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain/event"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Delivers_To_All_Sinks(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink1 := mocks.NewMockEventSink(ctrl)
	sink2 := mocks.NewMockEventSink(ctrl)

	events := make(chan event.Envelope, 4)
	worker := NewEventFanout(log, events, 1*time.Second, sink1, sink2)

	done := make(chan struct{})
	count := 0
	onConsume := func(ctx context.Context, e event.Envelope) error {
		count++
		if count == 2 {
			close(done)
		}
		return nil
	}
	sink1.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(onConsume).Times(1)
	sink2.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(onConsume).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When one event is emitted
	events <- event.Envelope{Type: event.TypeMessageCreated, Room: 1, CreatedAt: time.Now().UTC()}

	// Then both sinks consumed it
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		req.Fail("Both sinks should have consumed the event")
	}
}

func TestEventFanout_Slow_Sink_Does_Not_Starve_Others(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slow := mocks.NewMockEventSink(ctrl)
	fast := mocks.NewMockEventSink(ctrl)

	events := make(chan event.Envelope, 4)
	worker := NewEventFanout(log, events, 50*time.Millisecond, slow, fast)

	// Given a sink that hangs until its per-sink timeout fires
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e event.Envelope) error {
			<-ctx.Done()
			return ctx.Err()
		}).Times(1)

	delivered := make(chan struct{})
	fast.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e event.Envelope) error {
			close(delivered)
			return nil
		}).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	events <- event.Envelope{Type: event.TypeMessageUpdated, Room: 1, CreatedAt: time.Now().UTC()}

	select {
	case <-delivered:
	case <-time.After(1 * time.Second):
		req.Fail("Fast sink should have been served despite the slow one")
	}
}
