package signal

import "fmt"

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// BytesType validates raw byte payloads.
type BytesType struct{}

func (t *BytesType) Name() string { return "bytes" }

func (t *BytesType) Validate(value any) error {
	_, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected bytes, got %T", value)
	}
	return nil
}

// MapType validates string-keyed mappings of storable values.
type MapType struct{}

func (t *MapType) Name() string { return "map" }

func (t *MapType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected map, got %T", value)
	}
	for k, v := range m {
		if err := CheckValue(v); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// ValueType accepts any storable value (see CheckValue). It is the field
// type used where a signal carries an arbitrary piece of substance state,
// such as the value of a mirrored write.
type ValueType struct{}

func (t *ValueType) Name() string { return "value" }

func (t *ValueType) Validate(value any) error {
	return CheckValue(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Bytes creates a byte-slice type validator.
func Bytes() Type { return &BytesType{} }

// Map creates a validator for string-keyed maps of storable values.
func Map() Type { return &MapType{} }

// Value creates a validator accepting any storable value.
func Value() Type { return &ValueType{} }

// CheckValue reports whether v is storable in substance state or a
// signal field of type Value: string, integral, float, bool, bytes,
// a string-keyed map of storable values, or nil.
func CheckValue(v any) error {
	switch m := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		float32, float64,
		[]byte:
		return nil
	case map[string]any:
		for k, elem := range m {
			if err := CheckValue(elem); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
