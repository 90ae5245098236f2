// Package cli — changes.go implements the "fast-publish changes" command.
//
// changes is a read-only query: for each directory it reports the most
// recent tag and whether any commits since that tag altered the tree. This
// is the same signal the "-if" conditional release modes gate on, exposed
// so users can check it before releasing.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/asiloisad/pulsar-fast-publish/internal/vcs"
)

// NewChangesCommand creates the "changes" cobra command.
func NewChangesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changes [directory...]",
		Short: "Show whether commits exist since the most recent tag",
		Long: `Report, for each package directory, the most recent release tag and
whether the tree changed since it. This is exactly the condition the
--if-changed gate (and the "-if" mode suffix) checks.

Examples:
  fast-publish changes
  fast-publish changes pkg-a pkg-b`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := targetDirs(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			for _, dir := range dirs {
				strategy := vcs.Select(dir)
				VerboseLog("querying %s via %s backend", dir, strategy.Name())

				tag, err := strategy.LatestTag(ctx, dir)
				if err != nil && !errors.Is(err, vcs.ErrNoTag) {
					return err
				}

				detector := vcs.NewDetector(strategy)
				changed := detector.HasChangesSinceLastTag(ctx, dir)

				printChanges(filepath.Base(dir), tag, changed)
			}
			return nil
		},
	}

	return cmd
}

// printChanges outputs one directory's change status in text or JSON.
func printChanges(pkg, tag string, changed bool) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"package": pkg,
			"changed": changed,
		}
		if tag != "" {
			result["latestTag"] = tag
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	switch {
	case tag == "":
		fmt.Printf("%s: no tag yet (first release pending)\n", pkg)
	case changed:
		fmt.Printf("%s: changes since %s\n", pkg, tag)
	default:
		fmt.Printf("%s: no changes since %s\n", pkg, tag)
	}
}
