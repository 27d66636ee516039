package rhizome

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/rhizome/pkg/runner"
	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
)

// Version identifies the library release.
var Version = "0.1.0"

// System is the high-level entry point for the rhizome library.
// It holds one or more substance trees, drives their cycles through a
// runner, and exposes the directory view used by introspection tooling.
type System struct {
	mu    sync.RWMutex
	roots []*substance.Substance
	index map[string]*substance.Substance

	logger   *slog.Logger
	observer runner.Observer
	runner   *runner.Runner
}

// Option defines a functional option for configuring the System.
type Option func(*System)

// WithLogger sets a custom structured logger for the system.
func WithLogger(logger *slog.Logger) Option {
	return func(sys *System) {
		if logger != nil {
			sys.logger = logger
		}
	}
}

// WithObserver attaches an execution observer (e.g. the prometheus
// recorder in pkg/observability).
func WithObserver(obs runner.Observer) Option {
	return func(sys *System) {
		sys.observer = obs
	}
}

// New creates an empty System.
func New(opts ...Option) *System {
	sys := &System{
		index:  make(map[string]*substance.Substance),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(sys)
	}

	runnerOpts := []runner.Option{runner.WithLogger(sys.logger)}
	if sys.observer != nil {
		runnerOpts = append(runnerOpts, runner.WithObserver(sys.observer))
	}
	sys.runner = runner.New(runnerOpts...)
	return sys
}

// Add registers a root substance and its entire subtree. Every id in
// the tree must be unique across the system. The root must not belong
// to a domain already.
func (sys *System) Add(root *substance.Substance) error {
	if root == nil {
		return fmt.Errorf("rhizome: nil substance")
	}
	if root.Domain() != nil {
		return fmt.Errorf("rhizome: %s is not a root, its domain is %s", root.ID(), root.Domain().ID())
	}

	sys.mu.Lock()
	defer sys.mu.Unlock()
	if err := sys.register(root); err != nil {
		return err
	}
	sys.roots = append(sys.roots, root)
	return nil
}

func (sys *System) register(s *substance.Substance) error {
	if _, exists := sys.index[s.ID()]; exists {
		return fmt.Errorf("rhizome: duplicate substance id %s", s.ID())
	}
	sys.index[s.ID()] = s
	for _, child := range s.Children() {
		if err := sys.register(child); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the substance with the given id, anywhere in any tree.
func (sys *System) Lookup(id string) (*substance.Substance, bool) {
	sys.mu.RLock()
	defer sys.mu.RUnlock()
	s, ok := sys.index[id]
	return s, ok
}

// List returns every registered substance, sorted by id.
func (sys *System) List() []*substance.Substance {
	sys.mu.RLock()
	defer sys.mu.RUnlock()
	out := make([]*substance.Substance, 0, len(sys.index))
	for _, s := range sys.index {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Roots returns the registered tree roots, sorted by id.
func (sys *System) Roots() []*substance.Substance {
	sys.mu.RLock()
	defer sys.mu.RUnlock()
	out := make([]*substance.Substance, len(sys.roots))
	copy(out, sys.roots)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Run starts the cycle loops for every registered substance and blocks
// until all of them stop. See runner.Runner.Run for the stop
// conditions.
func (sys *System) Run(ctx context.Context) error {
	subs := sys.List()
	if len(subs) == 0 {
		return fmt.Errorf("rhizome: no substances registered")
	}
	sys.logger.Info("system starting", "substances", len(subs))
	err := sys.runner.Run(ctx, subs...)
	sys.logger.Info("system stopped")
	return err
}

// Shutdown requests a graceful stop: each root receives a
// self-addressed termination signal, which it fans out to its subtree
// and completes once every descendant has confirmed. Returns the first
// enqueue failure; delivery to an unbounded queue cannot fail.
func (sys *System) Shutdown() error {
	for _, root := range sys.Roots() {
		if err := root.Push(signal.Terminate(root.ID(), root.ID())); err != nil {
			return fmt.Errorf("rhizome: shutdown %s: %w", root.ID(), err)
		}
	}
	return nil
}

// Kill forces an immediate stop: every substance receives the
// preemptive termination signal at the head of its queue, skipping the
// confirmation handshake. Queued work is abandoned.
func (sys *System) Kill() error {
	for _, s := range sys.List() {
		if err := s.Push(signal.TerminateNow("system", s.ID())); err != nil {
			return fmt.Errorf("rhizome: kill %s: %w", s.ID(), err)
		}
	}
	return nil
}
