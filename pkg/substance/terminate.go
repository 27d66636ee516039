package substance

import (
	"github.com/aretw0/rhizome/pkg/signal"
)

// TermState is the termination lifecycle of a substance.
// Transitions only move forward; TermTerminated is terminal.
type TermState int32

const (
	TermRunning TermState = iota
	TermRequested
	TermConfirmed
	TermTerminated
)

func (t TermState) String() string {
	switch t {
	case TermRunning:
		return "running"
	case TermRequested:
		return "requested"
	case TermConfirmed:
		return "confirmed"
	case TermTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TrackState is the initiator-side view of one child in the handshake.
type TrackState int

const (
	TrackRequested TrackState = iota + 1
	TrackConfirmed
)

// Termination returns the current termination state. Safe from any
// goroutine.
func (s *Substance) Termination() TermState {
	return TermState(s.term.Load())
}

// Terminal reports whether the substance has reached its terminal state.
// Cycles stop mid-iteration as soon as this becomes true.
func (s *Substance) Terminal() bool {
	return s.Termination() == TermTerminated
}

func (s *Substance) setTermination(state TermState) {
	s.term.Store(int32(state))
	s.logger.Debug("termination", "substance", s.id, "state", state.String())
	if s.hooks.OnTermination != nil {
		s.hooks.OnTermination(s, state)
	}
}

// handleTerminateNow is the emergency fast path: immediate terminal
// transition, no descendant wait, no confirmations.
func (s *Substance) handleTerminateNow() {
	if s.Terminal() {
		return
	}
	s.setTermination(TermTerminated)
}

// handleTerminate runs the countdown handshake step for one received
// SigTerminate. The first receipt moves the substance to requested and
// fans the request out to every registered child. A self-addressed
// terminate (the initiator's trigger) or one from the own domain
// authorizes finalization once all children have confirmed.
func (s *Substance) handleTerminate(sig *signal.Signal) error {
	if s.Terminal() {
		return nil
	}

	if s.Termination() == TermRunning {
		s.setTermination(TermRequested)
		s.tracking = make(map[string]TrackState, len(s.children))
		for id, child := range s.children {
			s.tracking[id] = TrackRequested
			if err := child.Push(signal.Terminate(s.id, id)); err != nil {
				return err
			}
		}
	}

	switch {
	case sig.Src() == s.id && sig.Dst() == s.id:
		s.authorized = true
	case s.domain != nil && sig.Src() == s.domain.id:
		s.authorized = true
	}

	return s.tryComplete()
}

// handleTerminated records a child's confirmation. Confirmations from
// substances outside the tracking map are ignored.
func (s *Substance) handleTerminated(sig *signal.Signal) {
	if s.tracking == nil {
		return
	}
	if _, tracked := s.tracking[sig.Src()]; !tracked {
		return
	}
	s.tracking[sig.Src()] = TrackConfirmed
	// Completion errors surface when the upward reply cannot be
	// enqueued; the state transition itself has already happened.
	_ = s.tryComplete()
}

// tryComplete finalizes once finalization is authorized and every
// tracked child has confirmed. The reply is delivered straight into the
// domain's queue: bubbling it through Emit would land grandchild
// confirmations at the tree root instead of the waiting parent.
func (s *Substance) tryComplete() error {
	if !s.authorized || s.Terminal() {
		return nil
	}
	for _, state := range s.tracking {
		if state != TrackConfirmed {
			return nil
		}
	}

	s.setTermination(TermConfirmed)
	if s.domain != nil {
		if err := s.domain.Push(signal.Terminated(s.id, s.domain.id, 0)); err != nil {
			return err
		}
	}
	s.setTermination(TermTerminated)
	return nil
}
