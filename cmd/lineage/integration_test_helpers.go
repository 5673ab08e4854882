//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
)

// testRepo is a temporary repository with named commits.
type testRepo struct {
	t      *testing.T
	path   string
	commit map[string]string // message -> id
}

// setupTestRepo creates an empty repo on branch main.
// The path has symlinks resolved (macOS /var -> /private/var).
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()
	if err := git.CheckGit(); err != nil {
		t.Skip("git not installed")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	r := &testRepo{t: t, path: filepath.Join(dir, "repo"), commit: make(map[string]string)}

	r.git("init", "-q", "-b", "main", r.path)
	r.git("config", "user.email", "test@test.com")
	r.git("config", "user.name", "Test User")
	r.git("config", "commit.gpgsign", "false")
	return r
}

// git runs git in the repo and returns trimmed output.
func (r *testRepo) git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.path
	if args[0] == "init" {
		cmd.Dir = filepath.Dir(r.path)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// commitAs creates an empty commit and records its id under msg.
func (r *testRepo) commitAs(msg string) string {
	r.t.Helper()
	r.git("commit", "-q", "--allow-empty", "-m", msg)
	id := r.git("rev-parse", "HEAD")
	r.commit[msg] = id
	return id
}

// setupMergedFeature builds
//
//	a - b ------- m   (main)
//	     \       /
//	      f1 - f2     (feature, merged and deleted)
func setupMergedFeature(t *testing.T) *testRepo {
	t.Helper()
	r := setupTestRepo(t)
	r.commitAs("a")
	r.commitAs("b")
	r.git("checkout", "-q", "-b", "feature")
	r.commitAs("f1")
	r.commitAs("f2")
	r.git("checkout", "-q", "main")
	r.git("merge", "-q", "--no-ff", "-m", "Merge branch 'feature'", "feature")
	r.commit["m"] = r.git("rev-parse", "HEAD")
	r.git("branch", "-q", "-D", "feature")
	return r
}

// testContext returns a context for running commands in workDir with cfg.
// Primary output is captured in the returned buffer.
func testContext(t *testing.T, cfg *config.Config, workDir string) (context.Context, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx, &out
}

// execCmd executes a fresh command with args.
func execCmd(ctx context.Context, newCmd func() *cobra.Command, args ...string) error {
	cmd := newCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

// runCmd is execCmd failing the test on error.
func runCmd(t *testing.T, ctx context.Context, newCmd func() *cobra.Command, args ...string) {
	t.Helper()
	if err := execCmd(ctx, newCmd, args...); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
}
