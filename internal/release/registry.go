package release

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/asiloisad/pulsar-fast-publish/internal/config"
)

// Registry publishes a release tag to the package registry. The pipeline
// only needs the one operation; the indirection exists so pipeline tests
// can substitute a double without spawning processes.
type Registry interface {
	// Publish runs the registry publish command for the given tag in dir
	// and returns the combined command output (ANSI-stripped). A non-zero
	// exit is an error carrying the same output as diagnostic text.
	Publish(ctx context.Context, dir, tag string) (string, error)
}

// CommandRegistry is the subprocess-backed Registry. It runs the configured
// registry command (ppm by default) with the tag appended as the final
// argument, e.g. `ppm publish --tag v1.2.3`.
type CommandRegistry struct {
	cfg config.RegistryConfig
}

// NewCommandRegistry creates a Registry invoking the configured command.
func NewCommandRegistry(cfg config.RegistryConfig) *CommandRegistry {
	return &CommandRegistry{cfg: cfg}
}

// Publish runs the registry command to completion. There is no timeout: the
// publish step talks to a remote registry and can legitimately take a while,
// and the caller's context still allows cancellation.
func (r *CommandRegistry) Publish(ctx context.Context, dir, tag string) (string, error) {
	args := append(append([]string{}, r.cfg.Args...), tag)

	// #nosec G204 — command and args come from the package's own config file
	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = dir

	// The registry tool interleaves progress and errors on both streams,
	// so combined output is the useful diagnostic unit.
	raw, err := cmd.CombinedOutput()
	output := strings.TrimSpace(stripANSI(string(raw)))

	if err != nil {
		if output == "" {
			output = err.Error()
		}
		return output, fmt.Errorf("%s %s failed: %s", r.cfg.Command, strings.Join(args, " "), output)
	}
	return output, nil
}
