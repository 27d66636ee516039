package substance

import "errors"

var (
	// ErrQueueFull is returned to a producer when a bounded input queue
	// is at capacity. Backpressure is explicit; queues never grow
	// unbounded silently.
	ErrQueueFull = errors.New("substance: input queue full")

	// ErrReentrantDispatch is returned when a handler calls Dispatch on
	// its own substance. Self-directed follow-ups must go through
	// Emit(self -> self) and be processed on a later turn.
	ErrReentrantDispatch = errors.New("substance: reentrant dispatch")

	// ErrDuplicateChild is returned by Adopt when the child's id is
	// already registered under this domain.
	ErrDuplicateChild = errors.New("substance: duplicate child id")

	// ErrAlreadyAdopted is returned by Adopt when the child already has
	// a domain.
	ErrAlreadyAdopted = errors.New("substance: child already has a domain")
)
