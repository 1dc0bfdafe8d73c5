package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Output.ShowDisassembly)
	assert.False(t, cfg.Output.ShowConstantPool)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 0, cfg.Decompiler.MaxBlocksPerMethod, "0 means unbounded")
	assert.False(t, cfg.Logging.Verbose)
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "javadec.toml")

	contents := `
[output]
show_constant_pool = true
format = "json"

[decompiler]
max_blocks_per_method = 500
stop_on_first_error = true

[logging]
verbose = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, cfg.Output.ShowConstantPool)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Decompiler.MaxBlocksPerMethod)
	assert.True(t, cfg.Decompiler.StopOnFirstError)
	assert.True(t, cfg.Logging.Verbose)
	// Fields not present in the file keep their defaults.
	assert.True(t, cfg.Output.ShowDisassembly)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "invalid.toml")

	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = 123\n"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
