package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-relay/broker"
	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingConfirmer struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (c *recordingConfirmer) Confirm(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
}

func (c *recordingConfirmer) confirmed() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID{}, c.ids...)
}

func TestDeliveryWorker_Stores_Then_Confirms(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channelBroker := broker.NewChannelBroker(4, log)
	messagesMock := mocks.NewMockIMessageRepository(ctrl)
	confirmer := &recordingConfirmer{}

	msg := domain.Message{
		ID:        uuid.New(),
		Room:      1,
		Sender:    2,
		Content:   "persist me",
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusSentToKafka,
	}

	messagesMock.EXPECT().
		MessageByID(msg.ID).
		Return(domain.Message{}, chaterrors.ErrMessageNotFound).
		AnyTimes()

	stored := make(chan struct{})
	messagesMock.EXPECT().
		StoreMessage(gomock.Any()).
		DoAndReturn(func(m domain.Message) error {
			// The record hits disk as SAVED, never in a transient state
			require.Equal(t, domain.StatusSaved, m.Status)
			require.Equal(t, msg.ID, m.ID)
			close(stored)
			return nil
		}).
		Times(1)

	worker := NewDeliveryWorker(channelBroker, messagesMock, confirmer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	req.NoError(channelBroker.Publish(ctx, msg))

	select {
	case <-stored:
	case <-time.After(1 * time.Second):
		req.Fail("Message was not persisted in time")
	}

	req.Eventually(func() bool {
		ids := confirmer.confirmed()
		return len(ids) == 1 && ids[0] == msg.ID
	}, 1*time.Second, 10*time.Millisecond)
}

func TestDeliveryWorker_Store_Failure_Retries_Without_Confirm(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channelBroker := broker.NewChannelBroker(4, log)
	messagesMock := mocks.NewMockIMessageRepository(ctrl)
	confirmer := &recordingConfirmer{}

	messagesMock.EXPECT().
		MessageByID(gomock.Any()).
		Return(domain.Message{}, chaterrors.ErrMessageNotFound).
		AnyTimes()

	// Given a store failing once, then succeeding on redelivery
	succeeded := make(chan struct{})
	gomock.InOrder(
		messagesMock.EXPECT().StoreMessage(gomock.Any()).Return(errors.New("disk full")).Times(1),
		messagesMock.EXPECT().StoreMessage(gomock.Any()).DoAndReturn(func(domain.Message) error {
			close(succeeded)
			return nil
		}).Times(1),
	)

	worker := NewDeliveryWorker(channelBroker, messagesMock, confirmer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	msg := domain.Message{ID: uuid.New(), Room: 1, Sender: 2, Content: "retry me", CreatedAt: time.Now().UTC()}
	req.NoError(channelBroker.Publish(ctx, msg))

	select {
	case <-succeeded:
	case <-time.After(1 * time.Second):
		req.Fail("Redelivered message was not persisted")
	}

	// Confirmation only follows the successful store
	req.Eventually(func() bool {
		return len(confirmer.confirmed()) == 1
	}, 1*time.Second, 10*time.Millisecond)
}

func TestDeliveryWorker_Late_Delivery_Never_Resurrects_Failed_Message(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channelBroker := broker.NewChannelBroker(4, log)
	messagesMock := mocks.NewMockIMessageRepository(ctrl)
	confirmer := &recordingConfirmer{}

	msg := domain.Message{
		ID:        uuid.New(),
		Room:      1,
		Sender:    2,
		Content:   "too late",
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusSentToKafka,
	}

	// Given a message the watchdog already moved to terminal FAILED
	failed := msg
	failed.Status = domain.StatusFailed
	dropped := make(chan struct{})
	messagesMock.EXPECT().
		MessageByID(msg.ID).
		DoAndReturn(func(uuid.UUID) (domain.Message, error) {
			close(dropped)
			return failed, nil
		}).
		Times(1)
	messagesMock.EXPECT().StoreMessage(gomock.Any()).Times(0)

	worker := NewDeliveryWorker(channelBroker, messagesMock, confirmer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When the broker hands over the delivery after the fact
	req.NoError(channelBroker.Publish(ctx, msg))

	select {
	case <-dropped:
	case <-time.After(1 * time.Second):
		req.Fail("Late delivery was never consumed")
	}

	// Then the terminal record stands and no confirmation is issued
	time.Sleep(50 * time.Millisecond)
	req.Empty(confirmer.confirmed())
}
