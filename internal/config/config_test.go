package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that a directory without .fast-publish.yaml
// yields the default configuration.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "ppm", cfg.Registry.Command)
	assert.Equal(t, []string{"publish", "--tag"}, cfg.Registry.Args)
	assert.Equal(t, "Prepare v1.2.3 release", cfg.Message("v1.2.3"))
}

// TestLoadOverrides verifies that file values override defaults while
// unspecified fields keep theirs.
func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `remote: upstream
tagPrefix: ""
registry:
  command: apm
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "", cfg.TagPrefix, "explicit empty tag prefix should stick")
	assert.Equal(t, "apm", cfg.Registry.Command)
	assert.Equal(t, []string{"publish", "--tag"}, cfg.Registry.Args,
		"unspecified registry args keep the default")
	assert.Equal(t, "Prepare 1.2.3 release", cfg.Message("1.2.3"))
}

// TestLoadUnparsable verifies that a malformed config file is an error
// instead of being silently ignored.
func TestLoadUnparsable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("remote: [broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

// TestLoadCustomMessage verifies the commit message template override.
func TestLoadCustomMessage(t *testing.T) {
	dir := t.TempDir()
	content := "commitMessage: \"Release %s\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Release v2.0.0", cfg.Message("v2.0.0"))
}
