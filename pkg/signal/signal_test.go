package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRegistry builds an isolated registry with a small taxonomy:
// base -> reading -> calibrated reading, exercising inheritance and
// a child override of an inherited default.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(Definition{
		Name: "base",
		Fields: Schema{
			"src": {Type: String(), Required: true},
			"dst": {Type: String(), Required: true},
		},
	}))
	require.NoError(t, reg.Register(Definition{
		Name:   "reading",
		Parent: "base",
		Fields: Schema{
			"sensor": {Type: String(), Required: true},
			"unit":   {Type: String(), Default: "celsius"},
			"value":  {Type: Float(), Default: 0.0},
		},
	}))
	require.NoError(t, reg.Register(Definition{
		Name:   "calibrated",
		Parent: "reading",
		Fields: Schema{
			// Override the inherited default.
			"unit":   {Type: String(), Default: "kelvin"},
			"offset": {Type: Float(), Default: 0.0},
		},
	}))
	return reg
}

func TestMergedSchemaInheritsAncestors(t *testing.T) {
	reg := testRegistry(t)

	schema, err := reg.Merged("calibrated")
	require.NoError(t, err)

	for _, field := range []string{"src", "dst", "sensor", "unit", "value", "offset"} {
		_, ok := schema[field]
		assert.True(t, ok, "merged schema missing %q", field)
	}
}

func TestMergedSchemaChildOverrideWins(t *testing.T) {
	reg := testRegistry(t)

	schema, err := reg.Merged("calibrated")
	require.NoError(t, err)
	assert.Equal(t, "kelvin", schema["unit"].Default)

	parent, err := reg.Merged("reading")
	require.NoError(t, err)
	assert.Equal(t, "celsius", parent["unit"].Default)
}

func TestMergedUnknownKind(t *testing.T) {
	reg := testRegistry(t)

	_, err := reg.Merged("nope")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestConstructWithExactFields(t *testing.T) {
	reg := testRegistry(t)

	sig, err := Construct(reg, "reading", map[string]any{
		"src":    "probe-1",
		"dst":    "collector",
		"sensor": "temp",
	})
	require.NoError(t, err)

	assert.Equal(t, "reading", sig.Kind())
	assert.Equal(t, "probe-1", sig.Src())
	assert.Equal(t, "collector", sig.Dst())
	assert.NotEmpty(t, sig.ID())

	// Absent optional fields take their defaults.
	unit, ok := sig.Get("unit")
	require.True(t, ok)
	assert.Equal(t, "celsius", unit)
}

func TestConstructMissingRequiredField(t *testing.T) {
	reg := testRegistry(t)

	_, err := Construct(reg, "reading", map[string]any{
		"src": "probe-1",
		"dst": "collector",
		// sensor omitted
	})
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestConstructWrongTypeFailsDespiteDefault(t *testing.T) {
	reg := testRegistry(t)

	// "unit" has a default, but a wrong-typed supplied value must
	// still fail, never silently coerce or fall back.
	_, err := Construct(reg, "reading", map[string]any{
		"src":    "probe-1",
		"dst":    "collector",
		"sensor": "temp",
		"unit":   42,
	})
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestConstructUndeclaredField(t *testing.T) {
	reg := testRegistry(t)

	_, err := Construct(reg, "reading", map[string]any{
		"src":    "probe-1",
		"dst":    "collector",
		"sensor": "temp",
		"bogus":  true,
	})
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := testRegistry(t)

	err := reg.Register(Definition{Name: "base"})
	assert.ErrorIs(t, err, ErrDuplicateKind)
}

func TestSignalImmutability(t *testing.T) {
	reg := testRegistry(t)

	sig, err := Construct(reg, "base", map[string]any{"src": "a", "dst": "b"})
	require.NoError(t, err)

	fields := sig.Fields()
	fields["src"] = "tampered"
	assert.Equal(t, "a", sig.Src())
}

func TestBuiltinKindsRegistered(t *testing.T) {
	for _, kind := range []string{
		KindSignal, KindControl, KindNoSignal, KindMirror,
		KindSet, KindTerminate, KindTerminated, KindTerminateNow,
	} {
		_, ok := Default().Lookup(kind)
		assert.True(t, ok, "builtin kind %q not registered", kind)
	}
}

func TestBuiltinConstructors(t *testing.T) {
	no := NoSignal("n1")
	assert.Equal(t, KindNoSignal, no.Kind())
	assert.Equal(t, "n1", no.Src())
	assert.Equal(t, "n1", no.Dst())

	m, err := Mirror("n1", "load", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "n1", m.Src())
	assert.Equal(t, "load", m.GetString(FieldKey))

	done := Terminated("child", "parent", 2)
	assert.Equal(t, int64(2), done.GetInt(FieldCountdown))

	// Default countdown is 0.
	done = Terminated("child", "parent", 0)
	assert.Equal(t, int64(0), done.GetInt(FieldCountdown))

	assert.True(t, Preemptive(KindTerminateNow))
	assert.False(t, Preemptive(KindTerminate))
	assert.False(t, Preemptive(KindNoSignal))
}
