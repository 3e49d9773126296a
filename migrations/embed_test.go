package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}

	assert.Equal(t, []string{
		"00001_create_used_quotes.sql",
		"00002_create_favorites.sql",
		"00003_create_user_settings.sql",
		"00004_create_user_filters.sql",
	}, names)

	for _, name := range names {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", name)
		assert.Contains(t, string(data), "-- +goose Down", name)
	}
}
