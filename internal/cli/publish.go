// Package cli — publish.go implements the "fast-publish publish" command.
//
// publish is bump plus the registry step: after the git steps succeed, the
// configured registry command (ppm by default) publishes the new tag. When
// the registry step fails, the commit and tag are NOT rolled back — a
// best-effort recovery push runs and the error suggests `fast-publish
// retry` to republish the existing tag.
package cli

import (
	"github.com/spf13/cobra"
)

// NewPublishCommand creates the "publish" cobra command.
func NewPublishCommand() *cobra.Command {
	flags := &bumpFlags{}

	cmd := &cobra.Command{
		Use:   "publish <major|minor|patch> [directory...]",
		Short: "Bump, commit, tag, push, and publish to the package registry",
		Long: `Run the full release: bump the version in package.json, commit, create an
annotated release tag, push, and invoke the package-registry publish command
for the new tag.

If the registry step fails after the git steps succeeded, the commit and tag
are kept and pushed; republish them later with "fast-publish retry".

Examples:
  fast-publish publish patch
  fast-publish publish minor-if ~/projects/my-package`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, args, flags.ifChanged, true)
		},
	}

	cmd.Flags().BoolVar(&flags.ifChanged, "if-changed", false,
		"Only release when commits exist since the most recent tag")

	return cmd
}
