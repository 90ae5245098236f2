// Package cli — bump.go implements the "fast-publish bump" command.
//
// The bump command runs the release pipeline without a registry step:
// bump the version in package.json, commit, create an annotated tag, and
// push. The conditional gate ("only release when something changed since
// the last tag") is available both as the --if-changed flag and as the
// "-if" suffix on the mode argument, matching how the operation has
// historically been spelled.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/asiloisad/pulsar-fast-publish/internal/model"
)

// bumpFlags holds the flag values for the bump command.
type bumpFlags struct {
	// ifChanged gates the release on changes existing since the last tag.
	ifChanged bool
}

// NewBumpCommand creates the "bump" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewBumpCommand() *cobra.Command {
	flags := &bumpFlags{}

	cmd := &cobra.Command{
		Use:   "bump <major|minor|patch> [directory...]",
		Short: "Bump the package version, then commit, tag, and push",
		Long: `Bump the version field in package.json, commit the change, create an
annotated release tag, and push commits and tags to the remote.

The first argument selects which version component to increment. It may
carry an "-if" suffix (e.g. "patch-if") as shorthand for --if-changed.

Examples:
  fast-publish bump patch
  fast-publish bump minor ~/projects/my-package
  fast-publish bump patch-if pkg-a pkg-b pkg-c`,

		// At least the mode argument is required; any further arguments
		// are package directories.
		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, args, flags.ifChanged, false)
		},
	}

	cmd.Flags().BoolVar(&flags.ifChanged, "if-changed", false,
		"Only release when commits exist since the most recent tag")

	return cmd
}

// runRelease is shared by bump and publish: parse the mode argument, then
// run one pipeline invocation per directory. publish selects whether the
// registry step runs after the git steps.
func runRelease(cmd *cobra.Command, args []string, ifChanged, publish bool) error {
	mode, suffixConditional, err := model.ParseBumpMode(args[0])
	if err != nil {
		return err
	}

	// The flag and the mode suffix are two spellings of the same gate;
	// either one enables it.
	conditional := ifChanged || suffixConditional

	pipeline := newPipeline()
	return runForEach(cmd.Context(), args[1:], func(ctx context.Context, dir string) model.Outcome {
		return pipeline.Run(ctx, dir, mode, conditional, publish)
	})
}
