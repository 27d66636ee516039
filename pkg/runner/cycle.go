package runner

import (
	"context"
	"time"

	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
)

// Cycle runs one complete turn of a substance: base phase, additional
// phase, optional intercycle wait. Must only be invoked from the
// substance's owning cycle goroutine (Run does this), never
// concurrently for the same substance.
//
// Every phase stops immediately, mid-iteration, once the substance
// reaches its terminal state.
func (r *Runner) Cycle(ctx context.Context, s *substance.Substance) error {
	start := time.Now()
	defer func() {
		r.observer.ObserveCycle(s.ID(), time.Since(start).Seconds())
		r.observer.SetQueueDepth(s.ID(), s.QueueLen())
		r.observer.SetTermination(s.ID(), s.Termination())
	}()

	// Base phase: exactly base_priority dispatches, NoSignal filling
	// an empty queue to keep the cadence. Unbounded runs until the
	// terminal state.
	base := s.BasePriority()
	for i := 0; base == substance.Unbounded || i < base; i++ {
		if s.Terminal() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sig, ok := s.PopSignal()
		if !ok {
			sig = signal.NoSignal(s.ID())
		}
		if err := r.dispatch(ctx, s, sig); err != nil {
			return err
		}
	}

	// Additional phase: strictly from the queue, never filler. Ends as
	// soon as the queue empties. Unbounded drains.
	additional := s.AdditionalPriority()
	for i := 0; additional == substance.Unbounded || i < additional; i++ {
		if s.Terminal() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sig, ok := s.PopSignal()
		if !ok {
			break
		}
		if err := r.dispatch(ctx, s, sig); err != nil {
			return err
		}
	}

	if s.Terminal() {
		return nil
	}

	// Intercycle wait: an explicit zero still arms the timer; absence
	// skips waiting entirely. Producers keep enqueueing meanwhile.
	if d, present := s.IntercycleWait(); present {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func (r *Runner) dispatch(ctx context.Context, s *substance.Substance, sig *signal.Signal) error {
	r.observer.ObserveDispatch(s.ID(), sig.Kind())
	return s.Dispatch(ctx, sig)
}
