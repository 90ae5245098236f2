package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiloisad/pulsar-fast-publish/internal/config"
)

// TestCommandRegistryPublish verifies the tag is appended as the final
// argument of the configured command and the command output is returned.
func TestCommandRegistryPublish(t *testing.T) {
	r := NewCommandRegistry(config.RegistryConfig{
		Command: "echo",
		Args:    []string{"publishing"},
	})

	out, err := r.Publish(context.Background(), t.TempDir(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "publishing v1.0.0", out)
}

// TestCommandRegistryPublishFailure verifies that a non-zero exit surfaces
// the command's diagnostic output in the error.
func TestCommandRegistryPublishFailure(t *testing.T) {
	r := NewCommandRegistry(config.RegistryConfig{
		Command: "sh",
		Args:    []string{"-c", "echo token expired >&2; exit 1"},
	})

	_, err := r.Publish(context.Background(), t.TempDir(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

// TestCommandRegistryMissingBinary verifies a missing registry binary is an
// error rather than a silent no-op.
func TestCommandRegistryMissingBinary(t *testing.T) {
	r := NewCommandRegistry(config.RegistryConfig{
		Command: "definitely-not-a-registry-tool",
		Args:    []string{"publish"},
	})

	_, err := r.Publish(context.Background(), t.TempDir(), "v1.0.0")
	assert.Error(t, err)
}

// TestCommandRegistryStripsANSI verifies color codes in command output are
// removed before the output reaches callers.
func TestCommandRegistryStripsANSI(t *testing.T) {
	r := NewCommandRegistry(config.RegistryConfig{
		Command: "sh",
		Args:    []string{"-c", `printf '\033[32mdone\033[0m'`},
	})

	out, err := r.Publish(context.Background(), t.TempDir(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

// TestStripANSI exercises the pattern directly on representative sequences.
func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", stripANSI("plain"))
	assert.Equal(t, "error: bad", stripANSI("\x1b[1;31merror:\x1b[0m bad"))
	assert.Equal(t, "", stripANSI("\x1b[2K\x1b[1G"))
}
