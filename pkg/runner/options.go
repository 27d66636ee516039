package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/rhizome/pkg/substance"
)

// Observer receives execution measurements from the runner.
// Implementations must be safe for concurrent use; cycles for different
// substances report in parallel.
type Observer interface {
	ObserveDispatch(substanceID, kind string)
	ObserveCycle(substanceID string, seconds float64)
	SetQueueDepth(substanceID string, depth int)
	SetTermination(substanceID string, state substance.TermState)
}

type nopObserver struct{}

func (nopObserver) ObserveDispatch(string, string) {}
func (nopObserver) ObserveCycle(string, float64) {}
func (nopObserver) SetQueueDepth(string, int) {}
func (nopObserver) SetTermination(string, substance.TermState) {}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver attaches an execution observer (e.g. the prometheus
// recorder in pkg/observability).
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.observer = obs
		}
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
