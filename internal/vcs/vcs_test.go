package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository containing a single commit. Release operations need at least
// one commit to exist (a tag needs something to point at).
//
// The function uses t.TempDir() which automatically cleans up after the
// test. It also configures a local user.name and user.email so that
// `git commit` works in CI environments where global git config may not
// be set.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	writeTestFile(t, dir, "package.json", "{\n  \"name\": \"test-package\",\n  \"version\": \"1.0.0\"\n}\n")
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// setupTestRemote creates a bare repository and registers it as the given
// remote of repoPath, so push operations can be exercised without a network.
func setupTestRemote(t *testing.T, repoPath, remoteName string) string {
	t.Helper()

	bare := t.TempDir()
	runTestGit(t, bare, "init", "--bare")
	runTestGit(t, repoPath, "remote", "add", remoteName, bare)
	return bare
}

// runTestGit is a test helper that runs a git command in the specified
// directory and fails the test immediately if the command exits with a
// non-zero status.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// writeTestFile writes content to a file under dir, creating it if needed.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err, "failed to write %s", name)
}
