package blocking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper drives Table.Sweep on a fixed interval, grounded on
// internal/coordinator.HealthMonitor's ticker + context.Context
// Start/Stop lifecycle (teacher ticks over node health; this ticks over
// waiter deadlines instead).
//
// Start runs the ticker loop, and calls Table.Sweep, on whatever
// goroutine calls it; onExpire receives the waiters only after Sweep has
// already unblocked them. Table has no lock, so Start must run on the
// goroutine that performs every other Table mutation. cmd/collectiond
// does not use Sweeper: its engine loop ticks its own time.Ticker and
// calls Table.Sweep inline.
type Sweeper struct {
	table    *Table
	interval time.Duration
	logger   *zap.Logger
	onExpire func([]*Waiter)

	wg sync.WaitGroup
}

// NewSweeper returns a Sweeper that ticks table every interval, invoking
// onExpire with whatever waiters Table.Sweep expired on that tick.
func NewSweeper(table *Table, interval time.Duration, logger *zap.Logger, onExpire func([]*Waiter)) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{table: table, interval: interval, logger: logger.Named("blocking.sweeper"), onExpire: onExpire}
}

// Start blocks until ctx is canceled, ticking every interval and
// delivering timeouts to expired waiters.
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case now := <-ticker.C:
			expired := s.table.Sweep(now)
			if len(expired) > 0 {
				s.logger.Debug("waiters expired", zap.Int("count", len(expired)))
				if s.onExpire != nil {
					s.onExpire(expired)
				}
			}
		case <-ctx.Done():
			s.logger.Info("sweeper stopping")
			return
		}
	}
}

// Wait blocks until Start returns after ctx cancellation.
func (s *Sweeper) Wait() { s.wg.Wait() }
