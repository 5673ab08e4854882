package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo creates an empty git repo on branch main.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if err := CheckGit(); err != nil {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	repoPath := filepath.Join(resolved, "test-repo")

	if err := runGit(context.Background(), "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	cmds := [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		gitCmd(t, repoPath, args...)
	}
	return repoPath
}

// gitCmd runs git in dir and returns trimmed stdout.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// commit creates an empty commit and returns its id.
func commit(t *testing.T, dir, msg string) string {
	t.Helper()
	gitCmd(t, dir, "commit", "--allow-empty", "-q", "-m", msg)
	return gitCmd(t, dir, "rev-parse", "HEAD")
}
