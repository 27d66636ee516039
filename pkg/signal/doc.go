// Package signal defines the typed messages exchanged between substances.
//
// Every signal belongs to a registered kind. A kind declares a field
// schema (name -> type, default, description) and may inherit from a
// parent kind; the effective schema of a kind is the union of its own
// fields and all ancestor fields, with the most specific declaration
// winning on conflicts. Construction validates against the effective
// schema: a missing required field fails, a wrong-typed field fails even
// when a default exists, and absent optional fields take their defaults.
//
// Kinds self-register in the package registry at startup, so the set of
// kinds is explicit and enumerable. Signals are immutable once built.
package signal
