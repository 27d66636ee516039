package topology

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/rhizome/pkg/substance"
)

// Node declares one substance. It uses "mapstructure" tags to match the
// YAML keys of a tree declaration file.
type Node struct {
	ID   string `mapstructure:"id"`
	Kind string `mapstructure:"kind"`

	// Pointers distinguish "absent" from explicit zero; the distinction
	// matters for intercycle_waiting, where 0 is a real zero-length wait.
	BasePriority       *int     `mapstructure:"base_priority"`
	AdditionalPriority *int     `mapstructure:"additional_priority"`
	IntercycleWaiting  *float64 `mapstructure:"intercycle_waiting"`

	Mirroring     bool   `mapstructure:"mirroring"`
	QueueCapacity int    `mapstructure:"queue_capacity"`
	Children      []Node `mapstructure:"children"`
}

// Spec is a full tree declaration.
type Spec struct {
	Substances []Node `mapstructure:"substances"`
}

// Parse decodes a YAML tree declaration. Unknown keys are rejected so
// typos surface at load time instead of silently dropping config.
func Parse(data []byte) (*Spec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("topology: parse yaml: %w", err)
	}

	var spec Spec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("topology: decode: %w", err)
	}
	return &spec, nil
}

// Build instantiates the declared tree through reg. The result lists
// every substance with parents before their children.
func (spec *Spec) Build(reg *substance.Registry) ([]*substance.Substance, error) {
	seen := make(map[string]bool)
	var all []*substance.Substance

	var build func(node Node, parent *substance.Substance) error
	build = func(node Node, parent *substance.Substance) error {
		if node.ID == "" {
			return fmt.Errorf("topology: substance with no id")
		}
		if seen[node.ID] {
			return fmt.Errorf("topology: duplicate id %q", node.ID)
		}
		seen[node.ID] = true

		kind := node.Kind
		if kind == "" {
			kind = substance.BaseKind
		}
		factory, ok := reg.Lookup(kind)
		if !ok {
			return fmt.Errorf("topology: %s: unknown substance kind %q", node.ID, kind)
		}

		opts := node.options()
		sub, err := factory(node.ID, opts...)
		if err != nil {
			return fmt.Errorf("topology: %s: %w", node.ID, err)
		}
		if parent != nil {
			if err := parent.Adopt(sub); err != nil {
				return err
			}
		}
		all = append(all, sub)

		for _, child := range node.Children {
			if err := build(child, sub); err != nil {
				return err
			}
		}
		return nil
	}

	for _, node := range spec.Substances {
		if err := build(node, nil); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (node Node) options() []substance.Option {
	var opts []substance.Option
	if node.BasePriority != nil {
		opts = append(opts, substance.WithBasePriority(*node.BasePriority))
	}
	if node.AdditionalPriority != nil {
		opts = append(opts, substance.WithAdditionalPriority(*node.AdditionalPriority))
	}
	if node.IntercycleWaiting != nil {
		opts = append(opts, substance.WithIntercycleWait(time.Duration(*node.IntercycleWaiting*float64(time.Second))))
	}
	if node.Mirroring {
		opts = append(opts, substance.WithMirroring())
	}
	if node.QueueCapacity > 0 {
		opts = append(opts, substance.WithQueueCapacity(node.QueueCapacity))
	}
	return opts
}

// Loader reads a declaration file and builds its tree. Implements
// ports.TreeLoader.
type Loader struct {
	path     string
	registry *substance.Registry
}

// NewLoader creates a file-backed loader. A nil registry uses the
// process-wide substance-kind registry.
func NewLoader(path string, registry *substance.Registry) *Loader {
	if registry == nil {
		registry = substance.DefaultRegistry()
	}
	return &Loader{path: path, registry: registry}
}

// Load reads, parses and builds the declared tree.
func (l *Loader) Load(ctx context.Context) ([]*substance.Substance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("topology: read %s: %w", l.path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return spec.Build(l.registry)
}
