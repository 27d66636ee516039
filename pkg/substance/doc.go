// Package substance implements the autonomous actor units of the
// substrate.
//
// A substance owns an identifier, a typed state store, a bounded input
// queue and an optional upward link to its domain (parent). Exactly one
// consumer, the substance's own cycle, drains the queue; any number of
// producers may enqueue concurrently. All other fields are mutated only
// on the owner's cycle goroutine: a cross-thread state write must travel
// as a SigSet signal and is applied on a later turn.
//
// State writes come in two deliberate entry points. Put never mirrors
// and serves setup code and externally forced overwrites; Mutate is the
// handler-side write and replicates to the domain via SigMirror when
// mirroring is enabled. Whether a write mirrors is decided at the call
// site, never inferred from who the caller is.
package substance
