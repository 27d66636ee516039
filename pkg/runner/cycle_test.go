package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
)

// recorder collects the kinds dispatched to a substance, in order.
type recorder struct {
	kinds []string
}

func (rec *recorder) hooks() substance.Hooks {
	return substance.Hooks{
		OnDispatch: func(_ *substance.Substance, sig *signal.Signal) {
			rec.kinds = append(rec.kinds, sig.Kind())
		},
	}
}

func (rec *recorder) count(kind string) int {
	n := 0
	for _, k := range rec.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func newSub(t *testing.T, rec *recorder, opts ...substance.Option) *substance.Substance {
	t.Helper()
	opts = append(opts, substance.WithHooks(rec.hooks()))
	s, err := substance.New("s1", opts...)
	require.NoError(t, err)
	return s
}

func enqueue(t *testing.T, s *substance.Substance, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		sig, err := signal.New(signal.KindSignal, map[string]any{
			signal.FieldSrc: "producer",
			signal.FieldDst: s.ID(),
		})
		require.NoError(t, err)
		require.NoError(t, s.Push(sig))
	}
}

func TestCycleBaseFillsWithNoSignal(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(3),
		substance.WithAdditionalPriority(0),
	)
	enqueue(t, s, 2)

	require.NoError(t, New().Cycle(context.Background(), s))

	// Exactly 3 dispatches: the two queued signals, then one filler.
	assert.Equal(t, []string{signal.KindSignal, signal.KindSignal, signal.KindNoSignal}, rec.kinds)
	assert.Zero(t, s.QueueLen())
}

func TestCycleAdditionalDrains(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(1),
		substance.WithAdditionalPriority(substance.Unbounded),
	)
	enqueue(t, s, 4)

	require.NoError(t, New().Cycle(context.Background(), s))

	// 1 base dispatch + 4 additional = 5, zero fillers: the queue had
	// work for the whole base phase and the additional phase drains.
	assert.Len(t, rec.kinds, 5)
	assert.Zero(t, rec.count(signal.KindNoSignal))
	assert.Zero(t, s.QueueLen())
}

func TestCycleAdditionalEndsWhenQueueEmpties(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(0),
		substance.WithAdditionalPriority(5),
	)
	enqueue(t, s, 2)

	require.NoError(t, New().Cycle(context.Background(), s))

	// The additional phase never fills with NoSignal; it just ends.
	assert.Len(t, rec.kinds, 2)
	assert.Zero(t, rec.count(signal.KindNoSignal))
}

func TestCycleZeroPriorities(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(0),
		substance.WithAdditionalPriority(0),
	)
	enqueue(t, s, 1)

	require.NoError(t, New().Cycle(context.Background(), s))

	assert.Empty(t, rec.kinds)
	assert.Equal(t, 1, s.QueueLen())
}

func TestCycleStopsMidBaseOnTerminateNow(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(5),
		substance.WithAdditionalPriority(substance.Unbounded),
	)
	enqueue(t, s, 1)
	require.NoError(t, s.Push(signal.TerminateNow("operator", s.ID())))
	enqueue(t, s, 1)

	require.NoError(t, New().Cycle(context.Background(), s))

	// Preemption put TerminateNow at the head; the terminal transition
	// ends the cycle before any further iteration.
	assert.Equal(t, []string{signal.KindTerminateNow}, rec.kinds)
	assert.True(t, s.Terminal())
	assert.Equal(t, 2, s.QueueLen())
}

func TestCycleUnboundedBaseRunsUntilTerminal(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec,
		substance.WithBasePriority(substance.Unbounded),
	)
	enqueue(t, s, 3)
	require.NoError(t, s.Push(signal.TerminateNow("operator", s.ID())))

	require.NoError(t, New().Cycle(context.Background(), s))

	// Preemptive head insertion means the stop is the first dispatch.
	assert.Equal(t, []string{signal.KindTerminateNow}, rec.kinds)
	assert.True(t, s.Terminal())
}

func TestCycleIntercycleWait(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec, substance.WithIntercycleWait(20*time.Millisecond))

	start := time.Now()
	require.NoError(t, New().Cycle(context.Background(), s))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestCycleWaitHonorsContext(t *testing.T) {
	rec := &recorder{}
	s := newSub(t, rec, substance.WithIntercycleWait(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := New().Cycle(ctx, s)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
