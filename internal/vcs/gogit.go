package vcs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit is the in-process Strategy built on github.com/go-git/go-git.
// It avoids a subprocess spawn per operation and is preferred whenever it
// can open the repository; repositories go-git cannot handle (unusual
// extensions, some worktree layouts) fall back to GitCLI via Select.
type GoGit struct{}

// NewGoGit creates the in-process git strategy.
func NewGoGit() *GoGit {
	return &GoGit{}
}

// Name identifies the backend for logging.
func (g *GoGit) Name() string { return "go-git" }

// open opens the repository containing dir. DetectDotGit walks up parent
// directories the same way the git binary does, so release targets nested
// inside a monorepo resolve to the enclosing repository.
func (g *GoGit) open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

// Stage stages all changes in the working tree.
func (g *GoGit) Stage(ctx context.Context, dir string) error {
	repo, err := g.open(dir)
	if err != nil {
		return &VcsError{Stage: StageAdd, Detail: err.Error(), Err: err}
	}
	wt, err := repo.Worktree()
	if err != nil {
		return &VcsError{Stage: StageAdd, Detail: err.Error(), Err: err}
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return &VcsError{Stage: StageAdd, Detail: err.Error(), Err: err}
	}
	return nil
}

// Commit commits all staged changes with the given message. The author
// signature comes from the user's git configuration, with a tool identity
// as the last resort so a bare CI environment still commits.
func (g *GoGit) Commit(ctx context.Context, dir, message string) error {
	repo, err := g.open(dir)
	if err != nil {
		return &VcsError{Stage: StageCommit, Detail: err.Error(), Err: err}
	}
	wt, err := repo.Worktree()
	if err != nil {
		return &VcsError{Stage: StageCommit, Detail: err.Error(), Err: err}
	}

	sig := g.signature(repo)
	_, err = wt.Commit(message, &git.CommitOptions{All: true, Author: sig})
	if err != nil {
		return &VcsError{Stage: StageCommit, Detail: err.Error(), Err: err}
	}
	return nil
}

// Tag creates an annotated tag at HEAD with the given message.
func (g *GoGit) Tag(ctx context.Context, dir, name, message string) error {
	repo, err := g.open(dir)
	if err != nil {
		return &VcsError{Stage: StageTag, Detail: err.Error(), Err: err}
	}
	head, err := repo.Head()
	if err != nil {
		return &VcsError{Stage: StageTag, Detail: err.Error(), Err: err}
	}

	_, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  g.signature(repo),
		Message: message,
	})
	if err != nil {
		return &VcsError{Stage: StageTag, Detail: err.Error(), Err: err}
	}
	return nil
}

// Push pushes the current branch and reachable annotated tags to the named
// remote. An already-up-to-date remote is success, not an error — the point
// of the push is the remote having the refs, not the transfer itself.
func (g *GoGit) Push(ctx context.Context, dir, remote string) error {
	repo, err := g.open(dir)
	if err != nil {
		return &VcsError{Stage: StagePush, Detail: err.Error(), Err: err}
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		FollowTags: true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &VcsError{Stage: StagePush, Detail: err.Error(), Err: err}
	}
	return nil
}

// LatestTag returns the most recent release tag. Tags that parse as
// semantic versions (with or without a "v" prefix) are ordered by version;
// when no tag parses, the tag whose commit is newest wins. This is the
// in-process analogue of `git describe --tags --abbrev=0` for repositories
// whose tags are release markers.
func (g *GoGit) LatestTag(ctx context.Context, dir string) (string, error) {
	repo, err := g.open(dir)
	if err != nil {
		return "", &VcsError{Stage: StageDescribe, Detail: err.Error(), Err: err}
	}

	iter, err := repo.Tags()
	if err != nil {
		return "", &VcsError{Stage: StageDescribe, Detail: err.Error(), Err: err}
	}

	type taggedCommit struct {
		name    string
		version *semver.Version
		when    time.Time
	}
	var tags []taggedCommit

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		tc := taggedCommit{name: name}

		// Order key 1: semantic version, when the tag name parses as one.
		if v, parseErr := semver.NewVersion(strings.TrimPrefix(name, "v")); parseErr == nil {
			tc.version = v
		}

		// Order key 2: commit time, resolving annotated tag objects to
		// their target commit first.
		hash := ref.Hash()
		if tagObj, tagErr := repo.TagObject(hash); tagErr == nil {
			if commit, commitErr := tagObj.Commit(); commitErr == nil {
				tc.when = commit.Committer.When
			}
		} else if commit, commitErr := repo.CommitObject(hash); commitErr == nil {
			tc.when = commit.Committer.When
		}

		tags = append(tags, tc)
		return nil
	})
	if err != nil {
		return "", &VcsError{Stage: StageDescribe, Detail: err.Error(), Err: err}
	}

	if len(tags) == 0 {
		return "", &VcsError{Stage: StageDescribe, Detail: "repository has no tags", Err: ErrNoTag}
	}

	sort.Slice(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		// Semver-tagged releases sort above non-semver tags; among semver
		// tags the version decides, among the rest the commit time does.
		switch {
		case a.version != nil && b.version != nil:
			return a.version.LessThan(b.version)
		case a.version != nil:
			return false
		case b.version != nil:
			return true
		default:
			return a.when.Before(b.when)
		}
	})

	return tags[len(tags)-1].name, nil
}

// DiffSinceTag compares the tree at the given tag with the tree at HEAD and
// returns a short statistics line. An empty string means the trees are
// identical.
func (g *GoGit) DiffSinceTag(ctx context.Context, dir, tag string) (string, error) {
	repo, err := g.open(dir)
	if err != nil {
		return "", &VcsError{Stage: StageDiff, Detail: err.Error(), Err: err}
	}

	tagTree, err := g.treeAt(repo, tag)
	if err != nil {
		return "", &VcsError{Stage: StageDiff, Detail: err.Error(), Err: err}
	}
	headTree, err := g.treeAt(repo, "HEAD")
	if err != nil {
		return "", &VcsError{Stage: StageDiff, Detail: err.Error(), Err: err}
	}

	changes, err := object.DiffTree(tagTree, headTree)
	if err != nil {
		return "", &VcsError{Stage: StageDiff, Detail: err.Error(), Err: err}
	}
	if len(changes) == 0 {
		return "", nil
	}
	return fmt.Sprintf(" %d files changed", len(changes)), nil
}

// treeAt resolves a revision (tag name or HEAD) to its commit tree.
func (g *GoGit) treeAt(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

// signature builds the author/tagger signature from the merged git
// configuration (local, global, system). An unconfigured identity falls
// back to the tool's own, matching what CI environments expect.
func (g *GoGit) signature(repo *git.Repository) *object.Signature {
	name, email := "fast-publish", "fast-publish@localhost"

	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}

	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
