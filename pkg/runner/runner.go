package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/rhizome/pkg/substance"
)

// Runner executes substance cycles. A single Runner may drive any
// number of substances; each gets its own cycle goroutine, and the only
// shared mutable resource between two of them is the target's input
// queue.
type Runner struct {
	logger   *slog.Logger
	observer Observer
}

// Run starts one cycle loop per substance and blocks until every loop
// has stopped: a loop ends when its substance reaches the terminal
// state, the context is cancelled, or a cycle fails. The first cycle
// failure is returned; context cancellation is a clean stop.
func (r *Runner) Run(ctx context.Context, subs ...*substance.Substance) error {
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	for _, s := range subs {
		wg.Add(1)
		go func(s *substance.Substance) {
			defer wg.Done()
			r.logger.Debug("cycle loop started", "substance", s.ID())

			for !s.Terminal() && ctx.Err() == nil {
				if err := r.Cycle(ctx, s); err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						break
					}
					r.logger.Error("cycle failed", "substance", s.ID(), "err", err)
					once.Do(func() { firstErr = err })
					break
				}
			}

			r.observer.SetTermination(s.ID(), s.Termination())
			r.logger.Debug("cycle loop stopped",
				"substance", s.ID(),
				"termination", s.Termination().String(),
			)
		}(s)
	}

	wg.Wait()
	return firstErr
}
