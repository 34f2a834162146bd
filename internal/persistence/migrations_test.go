package persistence

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsPresentAndOrdered(t *testing.T) {
	names, err := migrationFilenames()
	require.NoError(t, err)
	require.NotEmpty(t, names, "the applications schema must ship with the binary")

	assert.True(t, sort.StringsAreSorted(names))
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".sql"), "unexpected migration file %s", name)
	}
	assert.Contains(t, names, "001_create_applications.sql")
}
