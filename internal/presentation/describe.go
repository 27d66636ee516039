// Package presentation renders signal kind documentation for the
// terminal.
package presentation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/rhizome/pkg/signal"
)

// NewRenderer returns a function that renders markdown using glamour.
// It auto-detects the terminal background style.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// KindMarkdown produces a markdown document describing a single signal
// kind: its lineage, description, and merged field schema.
func KindMarkdown(reg *signal.Registry, name string) (string, error) {
	def, ok := reg.Lookup(name)
	if !ok {
		return "", fmt.Errorf("describe: %w: %s", signal.ErrUnknownKind, name)
	}
	merged, err := reg.Merged(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", def.Name)
	if def.Parent != "" {
		fmt.Fprintf(&b, "Extends `%s`.\n\n", def.Parent)
	}
	if def.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", def.Description)
	}

	names := make([]string, 0, len(merged))
	for fname := range merged {
		names = append(names, fname)
	}
	sort.Strings(names)

	b.WriteString("| Field | Type | Required | Default | Description |\n")
	b.WriteString("|-------|------|----------|---------|-------------|\n")
	for _, fname := range names {
		f := merged[fname]
		required := ""
		if f.Required {
			required = "yes"
		}
		fallback := ""
		if f.Default != nil {
			fallback = fmt.Sprintf("`%v`", f.Default)
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			fname, f.Type.Name(), required, fallback, f.Description)
	}
	return b.String(), nil
}

// CatalogMarkdown produces a markdown index of every registered kind.
func CatalogMarkdown(reg *signal.Registry) string {
	var b strings.Builder
	b.WriteString("# Signal kinds\n\n")
	for _, name := range reg.Kinds() {
		def, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		line := "- **" + def.Name + "**"
		if def.Parent != "" {
			line += " (extends " + def.Parent + ")"
		}
		if def.Description != "" {
			line += ": " + def.Description
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
