// Package vcs provides the version-control operations behind the release
// pipeline: staging, committing, tagging, and pushing, plus the queries
// needed to decide whether anything changed since the last release.
//
// Two interchangeable backends implement the Strategy interface:
//   - GoGit runs in-process via github.com/go-git/go-git, preferred when it
//     can open the repository (no subprocess spawn per operation).
//   - GitCLI shells out to the git binary, the fallback that matches the
//     exact behavior users see in their terminal.
//
// Select probes once per process which backend to use and caches the
// answer; see select.go for the lifecycle.
package vcs

import (
	"context"
	"fmt"
)

// Strategy is the contract shared by both git backends. All methods operate
// on the repository containing dir; output strings are returned untrimmed
// and callers trim before comparison or parsing.
//
// The release steps (Stage, Commit, Tag, Push) mutate repository state and
// each depends on the state left by the previous one. The queries
// (LatestTag, DiffSinceTag) are read-only.
type Strategy interface {
	// Name identifies the backend ("git" or "go-git") for logging.
	Name() string

	// Stage stages all changes in the working tree (git add --all).
	Stage(ctx context.Context, dir string) error

	// Commit commits all staged changes with the given message.
	Commit(ctx context.Context, dir, message string) error

	// Tag creates an annotated tag at HEAD with the given message.
	Tag(ctx context.Context, dir, name, message string) error

	// Push pushes the current branch and its tags to the named remote.
	Push(ctx context.Context, dir, remote string) error

	// LatestTag returns the most recent release tag, or an error wrapping
	// ErrNoTag if the repository has no tags yet.
	LatestTag(ctx context.Context, dir string) (string, error)

	// DiffSinceTag returns diff statistics between the given tag and HEAD.
	// An empty (or whitespace-only) result means nothing changed.
	DiffSinceTag(ctx context.Context, dir, tag string) (string, error)
}

// Release step names used in VcsError.Stage and in outcome reporting.
// They mirror the order the pipeline runs them in.
const (
	StageAdd      = "stage"
	StageCommit   = "commit"
	StageTag      = "tag"
	StagePush     = "push"
	StageDescribe = "describe"
	StageDiff     = "diff"
)

// ErrNoTag is wrapped by LatestTag when the repository has no tags.
// Callers distinguish "fresh repository" from real failures with errors.Is.
var ErrNoTag = fmt.Errorf("no tag found")

// VcsError reports a failed version-control operation. Stage identifies
// which operation failed so the pipeline can name it in the outcome.
type VcsError struct {
	// Stage is one of the Stage* constants above.
	Stage string

	// Detail is the diagnostic text, typically trimmed stderr from the git
	// subprocess or the go-git error message.
	Detail string

	// Err is the underlying error.
	Err error
}

// Error satisfies the error interface.
func (e *VcsError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("git %s failed: %s", e.Stage, e.Detail)
	}
	return fmt.Sprintf("git %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *VcsError) Unwrap() error {
	return e.Err
}
