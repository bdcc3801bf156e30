package workers

import (
	"context"
	"errors"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/repositories"

	"github.com/google/uuid"
)

var _ contract.Worker = (*DeliveryWorker)(nil)

// Confirmer receives the persistence confirmation for an in-flight message.
type Confirmer interface {
	Confirm(id uuid.UUID)
}

// DeliveryWorker is the persistence consumer behind the broker: it drains
// published messages, writes each one durably with status SAVED, and only
// then confirms to the pipeline. The order matters: confirming first could
// mark a message SAVED that a crash then loses.
//
// The broker delivers at least once. Re-storing an identical record and
// re-confirming a completed message are both no-ops, so redeliveries are
// harmless. A delivery arriving after the watchdog already failed the
// message is dropped: FAILED is terminal and must not be overwritten
// with SAVED.
type DeliveryWorker struct {
	consumer  contract.BrokerConsumer
	messages  repositories.IMessageRepository
	confirmer Confirmer
	log       *slog.Logger
}

func NewDeliveryWorker(
	consumer contract.BrokerConsumer,
	messages repositories.IMessageRepository,
	confirmer Confirmer,
	log *slog.Logger,
) *DeliveryWorker {
	return &DeliveryWorker{consumer: consumer, messages: messages, confirmer: confirmer, log: log}
}

func (w *DeliveryWorker) Run(ctx context.Context) error {
	return w.consumer.Consume(ctx, func(_ context.Context, msg domain.Message) error {
		existing, err := w.messages.MessageByID(msg.ID)
		if err != nil && !errors.Is(err, chaterrors.ErrMessageNotFound) {
			w.log.Error("Failed to look up delivered message", "id", msg.ID, "error", err)
			return err
		}
		if err == nil && existing.Status == domain.StatusFailed {
			w.log.Warn("Dropping late delivery for failed message", "id", msg.ID)
			return nil
		}

		msg.Status = domain.StatusSaved
		if err := w.messages.StoreMessage(msg); err != nil {
			w.log.Error("Failed to persist delivered message", "id", msg.ID, "error", err)
			return err
		}
		w.confirmer.Confirm(msg.ID)
		return nil
	})
}
