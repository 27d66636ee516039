package rhizome_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/rhizome"
	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
)

func init() {
	signal.MustRegister(signal.Definition{
		Name:        "Reading",
		Parent:      signal.KindSignal,
		Description: "A measurement sample from a probe.",
		Fields: signal.Schema{
			"value": {Type: signal.Float(), Required: true},
		},
	})
}

// newStation builds a two-level tree: a station root that records
// mirrored child writes, and a mirroring sensor that stores readings.
func newStation(t *testing.T) (station, sensor *substance.Substance) {
	t.Helper()

	sensor, err := substance.New("sensor",
		substance.WithMirroring(),
		substance.WithIntercycleWait(time.Millisecond),
		substance.WithHandler("Reading", func(ctx context.Context, s *substance.Substance, sig *signal.Signal) error {
			value, _ := sig.Get("value")
			return s.Mutate("last", value)
		}),
	)
	require.NoError(t, err)

	station, err = substance.New("station",
		substance.WithIntercycleWait(time.Millisecond),
		substance.WithHandler(signal.KindMirror, func(ctx context.Context, s *substance.Substance, sig *signal.Signal) error {
			value, _ := sig.Get(signal.FieldValue)
			return s.Put(sig.Src()+"."+sig.GetString(signal.FieldKey), value)
		}),
	)
	require.NoError(t, err)
	require.NoError(t, station.Adopt(sensor))
	return station, sensor
}

func TestSystemMirrorsAndShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	station, sensor := newStation(t)
	sys := rhizome.New()
	require.NoError(t, sys.Add(station))

	got, ok := sys.Lookup("sensor")
	require.True(t, ok)
	assert.Same(t, sensor, got)
	_, ok = sys.Lookup("nobody")
	assert.False(t, ok)

	ids := make([]string, 0, 2)
	for _, s := range sys.List() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []string{"sensor", "station"}, ids)

	done := make(chan error, 1)
	go func() { done <- sys.Run(context.Background()) }()

	reading, err := signal.New("Reading", map[string]any{
		"src": "probe", "dst": "sensor", "value": 21.5,
	})
	require.NoError(t, err)
	require.NoError(t, sensor.Push(reading))

	// The reading lands on the sensor, the mirror bubbles to the station.
	require.Eventually(t, func() bool {
		return station.Get("sensor.last", nil) == 21.5
	}, time.Second, time.Millisecond)

	require.NoError(t, sys.Shutdown())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after shutdown")
	}

	assert.True(t, station.Terminal())
	assert.True(t, sensor.Terminal())
}

func TestSystemKill(t *testing.T) {
	defer goleak.VerifyNone(t)

	station, sensor := newStation(t)
	sys := rhizome.New()
	require.NoError(t, sys.Add(station))

	done := make(chan error, 1)
	go func() { done <- sys.Run(context.Background()) }()

	require.NoError(t, sys.Kill())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after kill")
	}

	assert.True(t, station.Terminal())
	assert.True(t, sensor.Terminal())
}

func TestSystemAddRejectsNonRoots(t *testing.T) {
	station, sensor := newStation(t)

	sys := rhizome.New()
	require.Error(t, sys.Add(sensor), "adopted substances are reachable through their root")
	require.NoError(t, sys.Add(station))

	dup, err := substance.New("station")
	require.NoError(t, err)
	require.Error(t, sys.Add(dup))
}

func TestSystemRunWithoutSubstances(t *testing.T) {
	sys := rhizome.New()
	require.Error(t, sys.Run(context.Background()))
}
