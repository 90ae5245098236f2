// Package cli — retry.go implements the "fast-publish retry" command.
//
// retry is the recovery operation for a release whose git steps succeeded
// but whose registry publish failed: it looks up the most recent tag and
// publishes exactly that tag to the registry, without bumping the version
// or touching git state.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/asiloisad/pulsar-fast-publish/internal/model"
)

// NewRetryCommand creates the "retry" cobra command.
func NewRetryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry [directory...]",
		Short: "Publish the most recent existing tag to the package registry",
		Long: `Look up the most recent release tag and invoke the package-registry publish
command for it, without bumping the version again.

Use this after "fast-publish publish" failed at the registry step: the
commit and tag already exist, and retry publishes them as-is.

Examples:
  fast-publish retry
  fast-publish retry ~/projects/my-package`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := newPipeline()
			return runForEach(cmd.Context(), args, func(ctx context.Context, dir string) model.Outcome {
				return pipeline.PublishLatestTag(ctx, dir)
			})
		},
	}

	return cmd
}
