package workers

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/contract"
)

// Ensure *WatchdogWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*WatchdogWorker)(nil)

// Sweeper is the slice of the pipeline the watchdog needs: force stalled
// in-flight messages into FAILED.
type Sweeper interface {
	SweepStuck(ctx context.Context, deadline time.Duration) int
}

// WatchdogWorker periodically sweeps the in-flight table. A message whose
// persistence confirmation never arrives must not sit in SENT_TO_KAFKA
// forever; past the deadline it is promoted to FAILED and an event is
// emitted so it can be reconciled.
type WatchdogWorker struct {
	sweeper  Sweeper
	interval time.Duration
	deadline time.Duration
	log      *slog.Logger
}

func NewWatchdogWorker(sweeper Sweeper, interval, deadline time.Duration, log *slog.Logger) *WatchdogWorker {
	return &WatchdogWorker{sweeper: sweeper, interval: interval, deadline: deadline, log: log}
}

func (w *WatchdogWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping watchdog")
			return ctx.Err()
		case <-ticker.C:
			if swept := w.sweeper.SweepStuck(ctx, w.deadline); swept > 0 {
				w.log.Warn("Watchdog forced stuck messages to FAILED", "count", swept)
			}
		}
	}
}
