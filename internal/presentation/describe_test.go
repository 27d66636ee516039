package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rhizome/pkg/signal"
)

func TestKindMarkdown(t *testing.T) {
	md, err := KindMarkdown(signal.Default(), signal.KindMirror)
	require.NoError(t, err)

	assert.Contains(t, md, "# SigMirror")
	assert.Contains(t, md, "Extends `Signal`.")
	// The merged schema row for an inherited field.
	assert.Contains(t, md, "| `src` | string | yes |")
	assert.Contains(t, md, "| `key` | string |")
}

func TestKindMarkdownUnknown(t *testing.T) {
	_, err := KindMarkdown(signal.Default(), "Bogus")
	require.ErrorIs(t, err, signal.ErrUnknownKind)
}

func TestCatalogMarkdown(t *testing.T) {
	md := CatalogMarkdown(signal.Default())
	assert.Contains(t, md, "# Signal kinds")
	assert.Contains(t, md, "**SigTerminate**")
	assert.Contains(t, md, "**NoSignal**")
}
