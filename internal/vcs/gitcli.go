package vcs

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// GitCLI is the subprocess-based Strategy. It shells out to the git binary
// for every operation, which guarantees the exact behavior users see in
// their terminal, at the cost of one process spawn per call.
type GitCLI struct{}

// NewGitCLI creates the subprocess-based git strategy.
func NewGitCLI() *GitCLI {
	return &GitCLI{}
}

// Name identifies the backend for logging.
func (g *GitCLI) Name() string { return "git" }

// Stage stages all changes in the working tree.
func (g *GitCLI) Stage(ctx context.Context, dir string) error {
	_, err := g.run(ctx, StageAdd, dir, "add", "--all")
	return err
}

// Commit commits all staged changes with the given message.
func (g *GitCLI) Commit(ctx context.Context, dir, message string) error {
	_, err := g.run(ctx, StageCommit, dir, "commit", "--all", "--message", message)
	return err
}

// Tag creates an annotated tag at HEAD.
func (g *GitCLI) Tag(ctx context.Context, dir, name, message string) error {
	_, err := g.run(ctx, StageTag, dir, "tag", "--annotate", name, "--message", message)
	return err
}

// Push pushes the current branch to the remote. --follow-tags also pushes
// every annotated tag reachable from the pushed commits, which covers the
// release tag created immediately before. The explicit HEAD refspec makes
// the push work even when no upstream is configured.
func (g *GitCLI) Push(ctx context.Context, dir, remote string) error {
	_, err := g.run(ctx, StagePush, dir, "push", "--follow-tags", remote, "HEAD")
	return err
}

// LatestTag returns the most recent tag reachable from HEAD using
// `git describe --tags --abbrev=0`. A repository without tags (or without
// commits) yields an error wrapping ErrNoTag.
func (g *GitCLI) LatestTag(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, StageDescribe, dir, "describe", "--tags", "--abbrev=0")
	if err != nil {
		var vcsErr *VcsError
		// git describe reports missing tags with "fatal: No names found"
		// (or "cannot describe" on shallow clones) and exit code 128.
		// Both mean the same thing to us: there is no tag yet.
		if errors.As(err, &vcsErr) && looksLikeNoTag(vcsErr.Detail) {
			return "", &VcsError{Stage: StageDescribe, Detail: vcsErr.Detail, Err: ErrNoTag}
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DiffSinceTag returns `git diff --shortstat <tag>..HEAD` output. An empty
// result after trimming means the tag and HEAD have identical trees.
func (g *GitCLI) DiffSinceTag(ctx context.Context, dir, tag string) (string, error) {
	return g.run(ctx, StageDiff, dir, "diff", "--shortstat", tag+"..HEAD")
}

// run executes a git command with the given arguments in the specified
// directory. It captures stdout and stderr separately; on non-zero exit it
// returns a VcsError carrying the named stage and the trimmed stderr text.
//
// The dir parameter is passed to git via the -C flag, which causes git to
// change to that directory before doing anything else. This avoids changing
// the process's working directory, which would be unsafe with multiple
// release targets in flight.
func (g *GitCLI) run(ctx context.Context, stage, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			// Some git failures (e.g. a missing binary) produce no stderr;
			// fall back to the exec error text.
			detail = err.Error()
		}
		return "", &VcsError{Stage: stage, Detail: detail, Err: err}
	}

	return stdout.String(), nil
}

// looksLikeNoTag reports whether git describe stderr indicates an absence
// of tags rather than a real failure.
func looksLikeNoTag(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "no names found") ||
		strings.Contains(s, "cannot describe") ||
		strings.Contains(s, "no tags can describe")
}
