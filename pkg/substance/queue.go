package substance

import (
	"sync"

	"github.com/aretw0/rhizome/pkg/signal"
)

// queue is the input signal queue: FIFO for every kind except the
// preemptive one, which is inserted at the head. One consumer (the
// owner's cycle), many producers.
type queue struct {
	mu       sync.Mutex
	items    []*signal.Signal
	capacity int // 0 = unbounded
}

func newQueue(capacity int) *queue {
	return &queue{capacity: capacity}
}

func (q *queue) push(sig *signal.Signal) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if signal.Preemptive(sig.Kind()) {
		// The emergency path is admitted even at capacity; subjecting
		// it to backpressure would defeat its purpose.
		q.items = append([]*signal.Signal{sig}, q.items...)
		return nil
	}
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return ErrQueueFull
	}
	q.items = append(q.items, sig)
	return nil
}

func (q *queue) pop() (*signal.Signal, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
