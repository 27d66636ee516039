package substance

import (
	"context"

	"github.com/aretw0/rhizome/pkg/signal"
)

// Handler processes one signal on the owner's cycle goroutine. Handlers
// run to completion before the next signal is drawn; they may mutate
// state through Mutate/Put and emit follow-up signals, but must never
// call Dispatch recursively; a self-directed follow-up is an
// Emit(self -> self) processed on a later turn.
type Handler func(ctx context.Context, s *Substance, sig *signal.Signal) error

// Hooks are optional observability callbacks invoked from the owner's
// cycle goroutine. They must not dispatch or block.
type Hooks struct {
	// OnDispatch fires before the signal reaches protocol handling and
	// the kind handler.
	OnDispatch func(s *Substance, sig *signal.Signal)
	// OnTermination fires on every termination state transition.
	OnTermination func(s *Substance, state TermState)
}

// Dispatch is the single stable entry point driving a substance's
// reaction to one signal: cross-cutting hooks and protocol handling
// first, then exactly one kind-specific handler (if registered).
// Invoked only by the owning cycle.
func (s *Substance) Dispatch(ctx context.Context, sig *signal.Signal) error {
	if s.inDispatch {
		return ErrReentrantDispatch
	}
	s.inDispatch = true
	defer func() { s.inDispatch = false }()

	s.logger.Debug("dispatch",
		"substance", s.id,
		"kind", sig.Kind(),
		"signal", sig.ID(),
		"src", sig.Src(),
	)
	if s.hooks.OnDispatch != nil {
		s.hooks.OnDispatch(s, sig)
	}

	switch sig.Kind() {
	case signal.KindTerminateNow:
		s.handleTerminateNow()
	case signal.KindTerminate:
		if err := s.handleTerminate(sig); err != nil {
			return err
		}
	case signal.KindTerminated:
		s.handleTerminated(sig)
	case signal.KindSet:
		if err := s.applySet(sig); err != nil {
			return err
		}
	}

	h, ok := s.handlers[sig.Kind()]
	if !ok {
		return nil
	}
	return h(ctx, s, sig)
}

// applySet performs the deferred external write carried by a SigSet.
func (s *Substance) applySet(sig *signal.Signal) error {
	value, _ := sig.Get(signal.FieldValue)
	return s.Put(sig.GetString(signal.FieldKey), value)
}
