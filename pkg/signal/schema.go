package signal

// Field describes one declared field of a signal kind.
type Field struct {
	// Type validates supplied values.
	Type Type
	// Default is the value used when the field is not supplied.
	// Ignored when Required is set.
	Default any
	// Required forces callers to supply the field explicitly.
	Required bool
	// Description documents the field for registry tooling.
	Description string
}

// Schema is a map of field names to their declarations.
// Example: {"key": {Type: String(), Required: true}}
type Schema map[string]Field

// merge overlays s on top of base. Entries in s win, so a child kind
// can redeclare an inherited field with a new type or default.
func (s Schema) merge(base Schema) Schema {
	out := make(Schema, len(base)+len(s))
	for name, f := range base {
		out[name] = f
	}
	for name, f := range s {
		out[name] = f
	}
	return out
}
