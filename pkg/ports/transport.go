package ports

import (
	"context"

	"github.com/aretw0/rhizome/pkg/signal"
)

// Transport carries signals across process boundaries. The core never
// implements one; it only requires that a transport's inbound side
// satisfies the same contract as Substance.Push, so remote signals
// integrate transparently with the cycle.
type Transport interface {
	// Send ships a signal to a remote destination address.
	Send(ctx context.Context, sig *signal.Signal, destination string) error

	// Deliver hands an inbound signal to the local substance addressed
	// by its dst field. Implementations must satisfy exactly the Push
	// contract: FIFO append, preemptive head insertion, concurrent
	// producer safety, ErrQueueFull backpressure.
	Deliver(sig *signal.Signal) error
}
