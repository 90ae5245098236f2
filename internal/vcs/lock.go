package vcs

import (
	"os"
	"path/filepath"
	"strings"
)

// lockFileName is the exclusive-lock artifact git creates while mutating
// the index. A process that crashed mid-operation leaves it behind, and
// every subsequent index-touching command then fails spuriously.
const lockFileName = "index.lock"

// ClearStaleLock removes a leftover index.lock from the repository metadata
// directory of dir, returning true if a lock was found and removed.
//
// The removal is best-effort: a failure to delete is swallowed, because the
// next git command will surface the real error if the lock persists. Callers
// invoke this immediately before any operation group that touches the index.
func ClearStaleLock(dir string) bool {
	gitDir := resolveGitDir(dir)
	if gitDir == "" {
		return false
	}

	lockPath := filepath.Join(gitDir, lockFileName)
	if _, err := os.Lstat(lockPath); err != nil {
		return false
	}
	return os.Remove(lockPath) == nil
}

// resolveGitDir locates the metadata directory for the repository at dir.
//
// In a normal checkout .git is a directory. In a linked worktree (and in
// submodules) .git is a file containing a "gitdir:" pointer to the real
// metadata directory, which is where the index and its lock live.
func resolveGitDir(dir string) string {
	gitPath := filepath.Join(dir, ".git")

	info, err := os.Lstat(gitPath)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return gitPath
	}

	// .git is a file — follow the gitdir pointer.
	content, err := os.ReadFile(gitPath)
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(content))
	if !strings.HasPrefix(line, "gitdir:") {
		return ""
	}
	target := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target
}
