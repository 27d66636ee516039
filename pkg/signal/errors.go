package signal

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind name is not registered.
var ErrUnknownKind = errors.New("signal: unknown kind")

// ErrDuplicateKind is returned when a kind name is registered twice.
var ErrDuplicateKind = errors.New("signal: kind already registered")

// MismatchError reports a construction failure against a kind's
// effective schema: a missing required field or a wrong-typed value.
type MismatchError struct {
	Kind   string // Kind being constructed
	Field  string // Offending field name
	Reason string // Human-readable reason for failure
	Value  any    // The supplied value, nil when the field was absent
}

func (e *MismatchError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("signal %s: field %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("signal %s: field %q: %s (got %T)", e.Kind, e.Field, e.Reason, e.Value)
}

// IsMismatch reports whether err is a schema mismatch.
func IsMismatch(err error) bool {
	var m *MismatchError
	return errors.As(err, &m)
}
