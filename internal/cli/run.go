// run.go holds the shared machinery behind the release subcommands:
// resolving directory arguments, driving one pipeline invocation per
// directory, rendering outcomes, and mapping the first failure to a
// process exit code.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asiloisad/pulsar-fast-publish/internal/model"
	"github.com/asiloisad/pulsar-fast-publish/internal/release"
)

// consoleNotifier renders pipeline notifications as text on stderr. In JSON
// mode notifications are suppressed entirely — the outcome objects printed
// on stdout are the machine interface, and mixing prose into the stream
// would break consumers.
type consoleNotifier struct{}

func (consoleNotifier) Info(title, detail string) {
	if jsonOutput {
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", title)
	if detail != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", detail)
	}
}

func (consoleNotifier) Success(title, detail string) {
	if jsonOutput {
		return
	}
	fmt.Fprintf(os.Stderr, "✓ %s\n", title)
	if detail != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", detail)
	}
}

func (consoleNotifier) Error(title, detail string) {
	if jsonOutput {
		return
	}
	fmt.Fprintf(os.Stderr, "✗ %s\n", title)
	if detail != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", detail)
	}
}

// targetDirs resolves the positional directory arguments to absolute paths.
// With no arguments the current directory is the single target.
func targetDirs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	dirs := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %q: %w", arg, err)
		}
		dirs = append(dirs, abs)
	}
	return dirs, nil
}

// runForEach executes fn once per target directory in argument order,
// prints each outcome, and returns a CLIError carrying the exit code of
// the first failure. A failing directory does not stop later directories —
// the user selected all of them, and each release is independent.
func runForEach(ctx context.Context, args []string, fn func(ctx context.Context, dir string) model.Outcome) error {
	dirs, err := targetDirs(args)
	if err != nil {
		return err
	}

	var firstFailure *model.Outcome
	for _, dir := range dirs {
		VerboseLog("processing %s", dir)
		outcome := fn(ctx, dir)
		printOutcome(outcome)

		if outcome.Kind == model.OutcomeFailed && firstFailure == nil {
			o := outcome
			firstFailure = &o
		}
	}

	if firstFailure != nil {
		return model.NewCLIError(exitCodeFor(*firstFailure),
			fmt.Sprintf("%s: %s failed", firstFailure.Package, firstFailure.Stage))
	}
	return nil
}

// newPipeline builds the production pipeline with the console notifier.
func newPipeline() *release.Pipeline {
	return release.NewPipeline(consoleNotifier{})
}

// printOutcome writes one outcome to stdout, as an indented JSON object in
// JSON mode or as a single summary line otherwise. Progress detail has
// already gone to stderr via the notifier.
func printOutcome(o model.Outcome) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(o, "", "  ")
		fmt.Println(string(data))
		return
	}

	switch o.Kind {
	case model.OutcomeSucceeded:
		fmt.Printf("%s %s (%s)\n", o.Package, o.Version, o.Tag)
	case model.OutcomeSkipped:
		fmt.Printf("%s skipped: %s\n", o.Package, o.Reason)
	case model.OutcomeFailed:
		fmt.Printf("%s failed at %s\n", o.Package, o.Stage)
	}
}

// exitCodeFor maps a failed outcome's stage to the process exit code.
func exitCodeFor(o model.Outcome) model.ExitCode {
	switch o.Stage {
	case release.StageConfig, release.StageBump, release.StageWrite:
		return model.ExitManifestError
	case release.StageRegistry:
		return model.ExitRegistryError
	case release.StageNoTag:
		return model.ExitNoTag
	default:
		// The remaining stages are the git sub-steps (stage, commit, tag,
		// push) and the git queries (describe, diff).
		return model.ExitGitError
	}
}
