package ports

import "context"

// MirrorStore persists state replicated through SigMirror. The src is
// the mirroring substance's identifier.
type MirrorStore interface {
	// Record stores one mirrored key/value write for src.
	Record(ctx context.Context, src, key string, value any) error

	// Load returns the last recorded value per key for src.
	// A substance that never mirrored yields an empty map, not an error.
	Load(ctx context.Context, src string) (map[string]any, error)

	// Sources lists the substance identifiers with recorded state.
	Sources(ctx context.Context) ([]string, error)
}
