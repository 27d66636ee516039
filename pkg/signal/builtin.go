package signal

// Well-known field names.
const (
	FieldSrc       = "src"
	FieldDst       = "dst"
	FieldKey       = "key"
	FieldValue     = "value"
	FieldCountdown = "countdown_request"
)

// Built-in kind names.
const (
	// KindSignal is the taxonomy root; every kind inherits src/dst from it.
	KindSignal = "Signal"
	// KindControl groups the signals steering substance lifecycle.
	KindControl = "Control"
	// KindNoSignal is the heartbeat filler dispatched by the base phase
	// when the input queue is empty.
	KindNoSignal = "NoSignal"
	// KindMirror replicates a self-initiated state write to the domain.
	KindMirror = "SigMirror"
	// KindSet applies a state write on the owner's next turn. It is the
	// queue-borne form of an external set, which must never mutate
	// foreign state directly.
	KindSet = "SigSet"
	// KindTerminate requests the countdown termination handshake.
	KindTerminate = "SigTerminate"
	// KindTerminated confirms a subtree has reached quiescence.
	KindTerminated = "SigTerminated"
	// KindTerminateNow is the preemptive emergency stop. It jumps to the
	// head of the input queue and bypasses the handshake.
	KindTerminateNow = "SigTerminateNow"
)

func init() {
	MustRegister(Definition{
		Name:        KindSignal,
		Description: "base signalling kind",
		Fields: Schema{
			FieldSrc: {Type: String(), Required: true, Description: "source/sender substance"},
			FieldDst: {Type: String(), Required: true, Description: "destination/receiver substance"},
		},
	})
	MustRegister(Definition{
		Name:        KindControl,
		Parent:      KindSignal,
		Description: "lifecycle control signals",
	})
	MustRegister(Definition{
		Name:        KindNoSignal,
		Parent:      KindSignal,
		Description: "empty-queue filler keeping the base phase cadence",
	})
	MustRegister(Definition{
		Name:        KindMirror,
		Parent:      KindSignal,
		Description: "state replication of a self-initiated write",
		Fields: Schema{
			FieldKey:   {Type: String(), Required: true, Description: "state key written"},
			FieldValue: {Type: Value(), Description: "value written"},
		},
	})
	MustRegister(Definition{
		Name:        KindSet,
		Parent:      KindSignal,
		Description: "deferred external state write, applied on the owner's next turn",
		Fields: Schema{
			FieldKey:   {Type: String(), Required: true, Description: "state key to write"},
			FieldValue: {Type: Value(), Description: "value to write"},
		},
	})
	MustRegister(Definition{
		Name:        KindTerminate,
		Parent:      KindControl,
		Description: "start or authorize the termination handshake",
	})
	MustRegister(Definition{
		Name:        KindTerminated,
		Parent:      KindControl,
		Description: "confirmation that the sender's subtree is quiescent",
		Fields: Schema{
			FieldCountdown: {Type: Int(), Default: 0, Description: "remaining countdown hops requested by the sender"},
		},
	})
	MustRegister(Definition{
		Name:        KindTerminateNow,
		Parent:      KindControl,
		Description: "preemptive emergency stop, no handshake",
	})
}

func mustNew(kind string, fields map[string]any) *Signal {
	sig, err := New(kind, fields)
	if err != nil {
		// Builtin kinds are registered above with known-good fields;
		// failing here is a programmer error.
		panic(err)
	}
	return sig
}

// NoSignal builds the filler signal a substance dispatches to itself.
func NoSignal(id string) *Signal {
	return mustNew(KindNoSignal, map[string]any{FieldSrc: id, FieldDst: id})
}

// Mirror builds the replication signal for a self-initiated write.
// Source and destination are both the writing substance.
func Mirror(id, key string, value any) (*Signal, error) {
	return New(KindMirror, map[string]any{
		FieldSrc:   id,
		FieldDst:   id,
		FieldKey:   key,
		FieldValue: value,
	})
}

// Set builds a deferred external state write for dst.
func Set(src, dst, key string, value any) (*Signal, error) {
	return New(KindSet, map[string]any{
		FieldSrc:   src,
		FieldDst:   dst,
		FieldKey:   key,
		FieldValue: value,
	})
}

// Terminate builds a handshake request. A self-addressed terminate
// (src == dst) is the initiator's finalize trigger.
func Terminate(src, dst string) *Signal {
	return mustNew(KindTerminate, map[string]any{FieldSrc: src, FieldDst: dst})
}

// Terminated builds a quiescence confirmation.
func Terminated(src, dst string, countdown int) *Signal {
	return mustNew(KindTerminated, map[string]any{
		FieldSrc:       src,
		FieldDst:       dst,
		FieldCountdown: countdown,
	})
}

// TerminateNow builds the preemptive emergency stop.
func TerminateNow(src, dst string) *Signal {
	return mustNew(KindTerminateNow, map[string]any{FieldSrc: src, FieldDst: dst})
}

// Preemptive reports whether kind jumps to the head of an input queue.
func Preemptive(kind string) bool {
	return kind == KindTerminateNow
}
