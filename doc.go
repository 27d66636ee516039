/*
Package rhizome is a hierarchical actor substrate. Autonomous units
called substances exchange schema-validated typed signals, execute
priority-weighted cycles, and terminate through a confirmed handshake
that guarantees no child outlives its domain's shutdown decision.

# Concept

A substance owns an identifier, a private key/value state, an input
queue and an optional link to its domain (parent). Substances form a
tree: emissions bubble upward toward the root, termination fans out
downward, and state changes optionally replicate to the domain through
mirror signals.

Signals are immutable typed records. Every signal belongs to a kind
registered in a schema registry; kinds inherit fields from a parent
kind, and construction validates every field against the merged
schema. Unknown fields, missing required fields and type mismatches
are rejected before a signal ever enters a queue.

# Usage

Build a tree, register handlers for the kinds each substance reacts
to, and hand the roots to a System:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/rhizome"
		"github.com/aretw0/rhizome/pkg/signal"
		"github.com/aretw0/rhizome/pkg/substance"
	)

	func main() {
		sensor, err := substance.New("sensor",
			substance.WithMirroring(),
			substance.WithHandler("Reading", func(ctx context.Context, s *substance.Substance, sig *signal.Signal) error {
				value, _ := sig.Get("value")
				return s.Mutate("last", value)
			}),
		)
		if err != nil {
			log.Fatal(err)
		}

		root, err := substance.New("station")
		if err != nil {
			log.Fatal(err)
		}
		if err := root.Adopt(sensor); err != nil {
			log.Fatal(err)
		}

		sys := rhizome.New()
		if err := sys.Add(root); err != nil {
			log.Fatal(err)
		}
		if err := sys.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

Run blocks until every substance has reached the terminal state, which
a graceful shutdown reaches via System.Shutdown and an emergency stop
via System.Kill.
*/
package rhizome
