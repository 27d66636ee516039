// Package runner drives substance execution cycles.
//
// One cycle is one substance's turn: a base phase of exactly
// base_priority dispatches (filling with NoSignal when the queue is
// empty), an additional phase of up to additional_priority dispatches
// drawn strictly from the queue, and an optional intercycle wait. The
// Runner runs one cycle loop per substance, each on its own goroutine,
// until the substance reaches its terminal state or the context is
// cancelled.
package runner
