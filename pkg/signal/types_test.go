package signal

import (
	"testing"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{3.14, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	if typ.Name() != "int" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int8(42), false},
		{int64(42), false},
		{float64(42), false},  // whole number
		{float64(42.5), true}, // not whole
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBytesType(t *testing.T) {
	typ := Bytes()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{[]byte("payload"), false},
		{[]byte{}, false},
		{"payload", true},
		{42, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestMapType(t *testing.T) {
	typ := Map()

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"empty", map[string]any{}, false},
		{"flat", map[string]any{"a": 1, "b": "x"}, false},
		{"nested", map[string]any{"a": map[string]any{"b": true}}, false},
		{"bad element", map[string]any{"a": struct{}{}}, true},
		{"not a map", []string{"a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := typ.Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestCheckValue(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"nil", nil, false},
		{"string", "x", false},
		{"int", 7, false},
		{"float", 1.5, false},
		{"bool", true, false},
		{"bytes", []byte{1}, false},
		{"map", map[string]any{"k": nil}, false},
		{"struct", struct{}{}, true},
		{"chan", make(chan int), true},
		{"slice", []int{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckValue(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckValue(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
