package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/rhizome/pkg/substance"
)

var (
	registerOnce sync.Once

	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rhizome",
			Subsystem: "cycle",
			Name:      "dispatches_total",
			Help:      "Signals dispatched, by substance and kind.",
		},
		[]string{"substance", "kind"},
	)
	cycleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rhizome",
			Subsystem: "cycle",
			Name:      "duration_seconds",
			Help:      "Duration of one full cycle (base + additional + wait).",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"substance"},
	)
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rhizome",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Input queue depth, sampled after each cycle.",
		},
		[]string{"substance"},
	)
	terminationState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rhizome",
			Subsystem: "termination",
			Name:      "state",
			Help:      "Termination state: 0 running, 1 requested, 2 confirmed, 3 terminated.",
		},
		[]string{"substance"},
	)
)

// Recorder reports runner measurements to prometheus. All methods are
// safe for concurrent use.
type Recorder struct{}

// NewRecorder registers the substrate collectors with the default
// prometheus registerer (once per process) and returns a Recorder.
func NewRecorder() *Recorder {
	registerOnce.Do(func() {
		prometheus.MustRegister(dispatches, cycleDuration, queueDepth, terminationState)
	})
	return &Recorder{}
}

func (*Recorder) ObserveDispatch(substanceID, kind string) {
	dispatches.WithLabelValues(substanceID, kind).Inc()
}

func (*Recorder) ObserveCycle(substanceID string, seconds float64) {
	cycleDuration.WithLabelValues(substanceID).Observe(seconds)
}

func (*Recorder) SetQueueDepth(substanceID string, depth int) {
	queueDepth.WithLabelValues(substanceID).Set(float64(depth))
}

func (*Recorder) SetTermination(substanceID string, state substance.TermState) {
	terminationState.WithLabelValues(substanceID).Set(float64(state))
}
