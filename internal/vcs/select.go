package vcs

import (
	"sync"
)

// selection caches the process-wide strategy choice. It is initialized
// lazily on first use and never re-probed: once the in-process backend has
// been ruled out, the subprocess backend is used for the remainder of the
// process lifetime. The probe is idempotent, so a race between two first
// callers computing it concurrently is harmless.
var selection struct {
	mu       sync.Mutex
	strategy Strategy
}

// Select returns the Strategy to use for the given directory. On first use
// it probes whether the in-process go-git backend can open the repository
// and resolve its HEAD; if so, go-git is used for the rest of the process,
// otherwise the git subprocess backend is.
//
// The probe result is cached process-wide rather than per-directory: the
// typical invocation releases one or more packages from the same kind of
// checkout, and a per-call probe would pay the open cost on every operation.
func Select(dir string) Strategy {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	if selection.strategy == nil {
		selection.strategy = probe(dir)
	}
	return selection.strategy
}

// probe checks whether go-git can service the repository at dir.
func probe(dir string) Strategy {
	gogit := NewGoGit()

	repo, err := gogit.open(dir)
	if err != nil {
		return NewGitCLI()
	}
	// Opening can succeed on layouts go-git cannot actually operate on
	// (e.g. repositories using extensions it does not implement); resolving
	// HEAD is the cheapest operation that exercises the object store.
	if _, err := repo.Head(); err != nil {
		return NewGitCLI()
	}
	return gogit
}

// resetSelection clears the cached strategy. Only tests use this, to
// exercise the probe against different repository layouts within one
// process.
func resetSelection() {
	selection.mu.Lock()
	defer selection.mu.Unlock()
	selection.strategy = nil
}
