// Package observability exposes prometheus metrics for the substrate:
// dispatch counts per substance and signal kind, queue depths, cycle
// durations and termination states. The Recorder satisfies the runner's
// Observer interface.
package observability
