package ports

import (
	"context"

	"github.com/aretw0/rhizome/pkg/substance"
)

// TreeLoader materializes a substance tree from an external
// declaration. The returned slice lists every substance with parents
// before their children; roots are the entries with no domain.
type TreeLoader interface {
	Load(ctx context.Context) ([]*substance.Substance, error)
}
