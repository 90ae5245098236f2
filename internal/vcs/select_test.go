package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSelectPrefersGoGit verifies that the probe picks the in-process
// backend for a repository go-git can open.
func TestSelectPrefersGoGit(t *testing.T) {
	resetSelection()
	t.Cleanup(resetSelection)

	dir := setupTestRepo(t)
	assert.Equal(t, "go-git", Select(dir).Name())
}

// TestSelectFallsBackToCLI verifies that a directory go-git cannot open
// selects the subprocess backend.
func TestSelectFallsBackToCLI(t *testing.T) {
	resetSelection()
	t.Cleanup(resetSelection)

	assert.Equal(t, "git", Select(t.TempDir()).Name())
}

// TestSelectCachesResult verifies the probe runs once per process: after
// the first selection, later calls return the same strategy even for a
// directory that would probe differently.
func TestSelectCachesResult(t *testing.T) {
	resetSelection()
	t.Cleanup(resetSelection)

	first := Select(t.TempDir())
	assert.Equal(t, "git", first.Name())

	// A perfectly good repository now still gets the cached choice.
	dir := setupTestRepo(t)
	assert.Same(t, first, Select(dir), "selection should be cached process-wide")
}
