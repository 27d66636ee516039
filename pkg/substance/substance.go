package substance

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/rhizome/pkg/signal"
)

// Unbounded marks a priority with no iteration limit.
const Unbounded = -1

// Substance is an autonomous actor unit: identity, state, input queue,
// an optional domain link and a priority-weighted cycle configuration.
//
// The zero value is not usable; construct with New.
type Substance struct {
	id        string
	domain    *Substance
	mirroring bool

	basePriority       int
	additionalPriority int
	interWait          *time.Duration

	in *queue

	// children is the explicit downward registry used for termination
	// fan-out. It is maintained by Adopt, not derived from back-pointers.
	children map[string]*Substance

	stateMu sync.RWMutex
	state   map[string]any

	term atomic.Int32

	handlers map[string]Handler

	// Owner-cycle bookkeeping. Touched only while dispatching.
	tracking   map[string]TrackState
	authorized bool
	inDispatch bool

	logger *slog.Logger
	hooks  Hooks
}

// Option configures a Substance at construction time.
type Option func(*Substance)

// WithBasePriority sets the base phase iteration count.
// Unbounded (-1) runs until termination becomes terminal.
func WithBasePriority(n int) Option {
	return func(s *Substance) { s.basePriority = n }
}

// WithAdditionalPriority sets the additional phase iteration cap.
// Unbounded (-1) drains the queue.
func WithAdditionalPriority(n int) Option {
	return func(s *Substance) { s.additionalPriority = n }
}

// WithIntercycleWait sets the sleep performed after both phases.
// An explicit zero still arms the wait; absence skips it entirely.
func WithIntercycleWait(d time.Duration) Option {
	return func(s *Substance) { s.interWait = &d }
}

// WithMirroring enables replication of handler-initiated state writes
// to the domain via SigMirror.
func WithMirroring() Option {
	return func(s *Substance) { s.mirroring = true }
}

// WithQueueCapacity bounds the input queue. 0 means unbounded.
func WithQueueCapacity(n int) Option {
	return func(s *Substance) { s.in = newQueue(n) }
}

// WithHandler registers the handler for a signal kind.
func WithHandler(kind string, h Handler) Option {
	return func(s *Substance) { s.handlers[kind] = h }
}

// WithLogger sets the logger used by dispatch. Nil means no-op.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Substance) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks Hooks) Option {
	return func(s *Substance) { s.hooks = hooks }
}

// New constructs a substance. Defaults: base priority 0, additional
// priority unbounded, no intercycle wait, mirroring off, unbounded queue.
func New(id string, opts ...Option) (*Substance, error) {
	if id == "" {
		return nil, fmt.Errorf("substance: empty id")
	}
	s := &Substance{
		id:                 id,
		basePriority:       0,
		additionalPriority: Unbounded,
		in:                 newQueue(0),
		children:           make(map[string]*Substance),
		state:              make(map[string]any),
		handlers:           make(map[string]Handler),
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.basePriority < Unbounded || s.additionalPriority < Unbounded {
		return nil, fmt.Errorf("substance %s: priority below -1", id)
	}
	if s.interWait != nil && *s.interWait < 0 {
		return nil, fmt.Errorf("substance %s: negative intercycle wait", id)
	}
	return s, nil
}

// ID returns the substance identifier.
func (s *Substance) ID() string { return s.id }

// Domain returns the parent substance, or nil at a root.
func (s *Substance) Domain() *Substance { return s.domain }

// Mirroring reports whether handler-initiated writes replicate upward.
func (s *Substance) Mirroring() bool { return s.mirroring }

// BasePriority returns the base phase iteration count.
func (s *Substance) BasePriority() int { return s.basePriority }

// AdditionalPriority returns the additional phase iteration cap.
func (s *Substance) AdditionalPriority() int { return s.additionalPriority }

// IntercycleWait returns the configured wait and whether one is present.
// A present zero is a valid, explicit zero-length wait.
func (s *Substance) IntercycleWait() (time.Duration, bool) {
	if s.interWait == nil {
		return 0, false
	}
	return *s.interWait, true
}

// Adopt attaches child to this substance: the child's emissions bubble
// through here, and this substance fans termination out to it. Wiring is
// setup-time only; adopting after cycles started is a race.
func (s *Substance) Adopt(child *Substance) error {
	if child.domain != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyAdopted, child.id)
	}
	if _, exists := s.children[child.id]; exists || child.id == s.id {
		return fmt.Errorf("%w: %s", ErrDuplicateChild, child.id)
	}
	child.domain = s
	s.children[child.id] = child
	return nil
}

// Children returns the adopted children, sorted by id.
func (s *Substance) Children() []*Substance {
	out := make([]*Substance, 0, len(s.children))
	for _, c := range s.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Handle registers the handler for a signal kind, replacing any
// existing one. Like Adopt, this is setup-time wiring; registering
// after cycles started is a race.
func (s *Substance) Handle(kind string, h Handler) {
	s.handlers[kind] = h
}

// Push enqueues a signal. Safe for concurrent producers. The preemptive
// kind is inserted at the queue head; everything else appends FIFO.
// This is also the delivery contract a transport's Deliver must satisfy.
func (s *Substance) Push(sig *signal.Signal) error {
	return s.in.push(sig)
}

// PopSignal dequeues the head. Owner cycle only.
func (s *Substance) PopSignal() (*signal.Signal, bool) {
	return s.in.pop()
}

// QueueLen returns the current queue depth.
func (s *Substance) QueueLen() int {
	return s.in.len()
}

// Emit routes a signal upward: a domained substance forwards to its
// domain, a domainless one materializes the signal into its own queue.
func (s *Substance) Emit(sig *signal.Signal) error {
	if s.domain != nil {
		return s.domain.Emit(sig)
	}
	return s.Push(sig)
}
