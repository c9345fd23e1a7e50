package cmd_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maun/co2key/internal/cmd"
	"github.com/maun/co2key/internal/keymap"
)

func TestConfigInitRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "mapping."+format)
			c := cmd.ConfigInit{Format: format, Output: dest}
			require.NoError(t, c.Run())

			// The generated template must load as a valid mapping.
			_, table, err := keymap.Load(dest)
			require.NoError(t, err)
			assert.Equal(t, 9, table.Len())
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mapping.json")
	c := cmd.ConfigInit{Format: "json", Output: dest}
	require.NoError(t, c.Run())

	err := c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination exists")

	c.Force = true
	assert.NoError(t, c.Run())
}
