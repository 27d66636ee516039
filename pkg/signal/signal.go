package signal

import (
	"github.com/google/uuid"
)

// Signal is an immutable typed message exchanged between substances.
// Construct with New (or a builtin helper); fields cannot change after
// construction.
type Signal struct {
	id     string
	kind   string
	fields map[string]any
}

// New constructs a signal of the given kind from the default registry.
// See Construct for the validation rules.
func New(kind string, fields map[string]any) (*Signal, error) {
	return Construct(defaultRegistry, kind, fields)
}

// Construct validates fields against the kind's effective schema and
// builds the signal. It fails with a MismatchError when:
//   - a supplied value does not validate against the declared type,
//     even if the field has a default;
//   - a required field is absent;
//   - a field is supplied that the schema does not declare.
//
// Absent optional fields take their declared defaults.
func Construct(reg *Registry, kind string, fields map[string]any) (*Signal, error) {
	schema, err := reg.Merged(kind)
	if err != nil {
		return nil, err
	}

	for name, value := range fields {
		decl, ok := schema[name]
		if !ok {
			return nil, &MismatchError{Kind: kind, Field: name, Reason: "not declared", Value: value}
		}
		if err := decl.Type.Validate(value); err != nil {
			return nil, &MismatchError{Kind: kind, Field: name, Reason: err.Error(), Value: value}
		}
	}

	contained := make(map[string]any, len(schema))
	for name, decl := range schema {
		if value, ok := fields[name]; ok {
			contained[name] = value
			continue
		}
		if decl.Required {
			return nil, &MismatchError{Kind: kind, Field: name, Reason: "required"}
		}
		contained[name] = decl.Default
	}

	return &Signal{
		id:     uuid.NewString(),
		kind:   kind,
		fields: contained,
	}, nil
}

// ID returns the trace identifier assigned at construction.
func (s *Signal) ID() string { return s.id }

// Kind returns the kind name.
func (s *Signal) Kind() string { return s.kind }

// Src returns the sender substance identifier.
func (s *Signal) Src() string {
	v, _ := s.fields[FieldSrc].(string)
	return v
}

// Dst returns the receiver substance identifier.
func (s *Signal) Dst() string {
	v, _ := s.fields[FieldDst].(string)
	return v
}

// Get returns a field value and whether the field exists in the
// effective schema of the signal's kind.
func (s *Signal) Get(name string) (any, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// GetString returns a string field, or "" when absent or not a string.
func (s *Signal) GetString(name string) string {
	v, _ := s.fields[name].(string)
	return v
}

// GetInt returns an integral field widened to int64, or 0.
func (s *Signal) GetInt(name string) int64 {
	switch v := s.fields[name].(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Fields returns a copy of the field values.
func (s *Signal) Fields() map[string]any {
	out := make(map[string]any, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}
