package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	chaterrors "chat-relay/errors"
	"chat-relay/repositories"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	_ contract.IPipeline = (*Pipeline)(nil)
	_ contract.Worker    = (*Pipeline)(nil)
)

type PipelineConfig struct {
	// PublishTimeout bounds a single broker publish attempt.
	PublishTimeout time.Duration
	// ConfirmDeadline bounds the wait for the persistence confirmation
	// after the broker acknowledged.
	ConfirmDeadline time.Duration
	// MaxPublishAttempts is the retry ceiling for broker hand-off.
	MaxPublishAttempts uint64
	// BackoffInitial and BackoffMax shape the exponential backoff
	// between publish attempts.
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// delivery is the in-flight record of one message. Its mutex serializes
// every transition for that message id: concurrent out-of-order
// acknowledgements can never corrupt the state machine.
type delivery struct {
	mu          sync.Mutex
	msg         domain.Message
	confirmed   chan struct{}
	confirmOnce sync.Once
	enqueuedAt  time.Time
}

func (d *delivery) apply(ev domain.TransitionEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := domain.Transition(d.msg.Status, ev)
	if err != nil {
		return err
	}
	d.msg.Status = next
	return nil
}

// tryFail transitions to FAILED unless the delivery is already terminal.
// The boolean return keeps the concurrent watchdog and pipeline paths from
// both running the failure side effects.
func (d *delivery) tryFail() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.msg.Status.Terminal() {
		return false
	}
	next, err := domain.Transition(d.msg.Status, domain.EventFailure)
	if err != nil {
		return false
	}
	d.msg.Status = next
	return true
}

func (d *delivery) snapshot() domain.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.msg
}

// Pipeline drives every submitted message from SENDING to SAVED or FAILED.
// Submit returns synchronously with the created message; the broker
// hand-off, the acknowledgement and the persistence confirmation are
// handled on a per-message goroutine. Transient broker errors are retried
// with bounded exponential backoff and never surfaced to the submitter:
// terminal failure is observable only through the message status and the
// emitted event.
type Pipeline struct {
	mu       sync.Mutex
	inflight map[uuid.UUID]*delivery

	broker   contract.Broker
	messages repositories.IMessageRepository
	tracker  contract.IReadTracker
	registry contract.IRegistry
	notifier contract.INotifier
	emitter  contract.Emitter
	validate *validator.Validate
	log      *slog.Logger
	cfg      PipelineConfig

	runCtx   context.Context
	running  chan struct{}
	runOnce  sync.Once
	stopped  chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPipeline(
	broker contract.Broker,
	messages repositories.IMessageRepository,
	tracker contract.IReadTracker,
	registry contract.IRegistry,
	notifier contract.INotifier,
	emitter contract.Emitter,
	cfg PipelineConfig,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		inflight: make(map[uuid.UUID]*delivery),
		broker:   broker,
		messages: messages,
		tracker:  tracker,
		registry: registry,
		notifier: notifier,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
		cfg:      cfg,
		running:  make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run implements contract.Worker. The pipeline itself does no periodic
// work; Run pins the lifecycle context used by the per-message goroutines
// and waits for them on shutdown, so the supervisor tears the pipeline
// down like any other worker.
func (p *Pipeline) Run(ctx context.Context) error {
	p.runOnce.Do(func() {
		p.runCtx = ctx
		close(p.running)
	})

	<-ctx.Done()
	// Closing stopped under the mutex orders it against Submit's
	// stopped-check and wg.Add: no goroutine can be added once Wait runs.
	p.stopOnce.Do(func() {
		p.mu.Lock()
		close(p.stopped)
		p.mu.Unlock()
	})
	p.wg.Wait()
	return nil
}

// Submit validates the command, creates the message in SENDING, registers
// it in the in-flight table and returns it so the caller holds an id
// immediately. Everything after that happens asynchronously.
func (p *Pipeline) Submit(_ context.Context, cmd domain.SubmitMessageCommand) (domain.Message, error) {
	if err := p.validate.Struct(cmd); err != nil {
		return domain.Message{}, err
	}

	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	msg := domain.Message{
		ID:        uuid.New(),
		Room:      cmd.RoomID(),
		Sender:    domain.UserID(cmd.Sender),
		Content:   cmd.Content,
		CreatedAt: createdAt,
		Status:    domain.StatusSending,
	}

	d := &delivery{
		msg:        msg,
		confirmed:  make(chan struct{}),
		enqueuedAt: time.Now().UTC(),
	}
	p.mu.Lock()
	select {
	case <-p.stopped:
		p.mu.Unlock()
		return domain.Message{}, chaterrors.ErrPipelineStopped
	default:
	}
	p.inflight[msg.ID] = d
	p.wg.Add(1)
	p.mu.Unlock()

	go p.drive(d)

	return msg, nil
}

// Confirm reports that a downstream consumer durably persisted the
// message. Redelivered confirmations for completed messages are no-ops.
func (p *Pipeline) Confirm(id uuid.UUID) {
	p.mu.Lock()
	d, ok := p.inflight[id]
	p.mu.Unlock()
	if !ok {
		return
	}
	d.confirmOnce.Do(func() { close(d.confirmed) })
}

// Status reports the current state of a message, in-flight or stored.
func (p *Pipeline) Status(id uuid.UUID) (domain.Message, error) {
	p.mu.Lock()
	d, ok := p.inflight[id]
	p.mu.Unlock()
	if ok {
		return d.snapshot(), nil
	}
	return p.messages.MessageByID(id)
}

// SweepStuck forces every in-flight message older than deadline into
// FAILED and emits an event for reconciliation. Invoked periodically by
// the watchdog worker so a lost confirmation can never park a message in
// SENT_TO_KAFKA forever.
func (p *Pipeline) SweepStuck(ctx context.Context, deadline time.Duration) int {
	cutoff := time.Now().UTC().Add(-deadline)

	p.mu.Lock()
	var stuck []*delivery
	for _, d := range p.inflight {
		if d.enqueuedAt.Before(cutoff) {
			stuck = append(stuck, d)
		}
	}
	p.mu.Unlock()

	swept := 0
	for _, d := range stuck {
		if d.snapshot().Status.Terminal() {
			continue
		}
		p.fail(ctx, d, chaterrors.ErrStuckMessage.Error())
		swept++
	}
	return swept
}

// drive walks one message through its lifecycle. All transitions for this
// message happen on this goroutine (or the watchdog, serialized by the
// delivery mutex), which enforces the at-most-one-in-flight rule per id.
func (p *Pipeline) drive(d *delivery) {
	defer p.wg.Done()
	<-p.running
	ctx := p.runCtx

	if err := d.apply(domain.EventHandedToBroker); err != nil {
		p.log.Error("Refusing to drive message", "id", d.snapshot().ID, "error", err)
		return
	}

	if err := p.publishWithRetry(ctx, d); err != nil {
		p.fail(ctx, d, fmt.Sprintf("%v: %v", chaterrors.ErrBrokerTimeout, err))
		return
	}

	if err := d.apply(domain.EventBrokerAck); err != nil {
		p.log.Error("Broker ack rejected by state machine", "id", d.snapshot().ID, "error", err)
		return
	}

	select {
	case <-d.confirmed:
	case <-time.After(p.cfg.ConfirmDeadline):
		p.fail(ctx, d, chaterrors.ErrPersistenceTimeout.Error())
		return
	case <-ctx.Done():
		// Shutdown: leave the record for the next run's reconciliation.
		return
	}

	if err := d.apply(domain.EventPersisted); err != nil {
		// A confirmation that lost the race against the watchdog sweep.
		p.log.Warn("Persistence confirm rejected by state machine", "id", d.snapshot().ID, "error", err)
		return
	}
	p.complete(ctx, d)
}

// publishWithRetry hands the message to the broker, retrying transient
// failures with bounded exponential backoff up to the attempt ceiling.
func (p *Pipeline) publishWithRetry(ctx context.Context, d *delivery) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.cfg.BackoffInitial
	policy.MaxInterval = p.cfg.BackoffMax

	var maxRetries uint64
	if p.cfg.MaxPublishAttempts > 0 {
		maxRetries = p.cfg.MaxPublishAttempts - 1
	}

	msg := d.snapshot()
	attempts := uint64(0)
	operation := func() error {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
		defer cancel()
		if err := p.broker.Publish(attemptCtx, msg); err != nil {
			p.log.Warn("Broker publish attempt failed", "id", msg.ID, "attempt", attempts, "error", err)
			return err
		}
		return nil
	}
	return backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, maxRetries), ctx))
}

// complete runs the SAVED side effects: unread increments for every room
// member but the sender, the MESSAGE_CREATED event, and the room notice.
func (p *Pipeline) complete(ctx context.Context, d *delivery) {
	msg := d.snapshot()

	for _, user := range p.registry.MembersOf(msg.Room) {
		if user == msg.Sender {
			continue
		}
		if err := p.tracker.IncrementUnreadCount(ctx, msg.Room, user); err != nil {
			p.log.Error("Failed to increment unread count", "room", msg.Room, "user", user, "error", err)
		}
	}

	p.emitter.Emit(ctx, event.TypeMessageCreated, msg.Room, event.MessageSaved{Message: msg})
	p.notifier.Notify(ctx, msg.Room)

	p.mu.Lock()
	delete(p.inflight, msg.ID)
	p.mu.Unlock()

	p.log.Debug(fmt.Sprintf("Message %s saved in room %d", msg.ID, msg.Room))
}

// fail moves the message to FAILED, stores the terminal record so later
// status queries survive the in-flight table, and emits the failure event.
// No room notice is sent for failures.
func (p *Pipeline) fail(ctx context.Context, d *delivery, reason string) {
	if !d.tryFail() {
		// Already terminal: a concurrent path won the race, nothing to do.
		return
	}
	msg := d.snapshot()

	if err := p.messages.StoreMessage(msg); err != nil {
		p.log.Error("Failed to store terminal failure record", "id", msg.ID, "error", err)
	}
	p.emitter.Emit(ctx, event.TypeMessageUpdated, msg.Room, event.MessageFailed{Message: msg, Reason: reason})

	p.mu.Lock()
	delete(p.inflight, msg.ID)
	p.mu.Unlock()

	p.log.Warn("Message failed", "id", msg.ID, "room", msg.Room, "reason", reason)
}
