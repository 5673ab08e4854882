package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrGitNotFound indicates git is not installed or not in PATH
	ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

	// ErrNotRepo is returned when a path is not inside a git repository.
	ErrNotRepo = errors.New("not in a git repository")
)

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// Repo describes the repository lineage operates on.
type Repo struct {
	WorkTree string // empty for bare repositories
	GitDir   string // absolute path of the (common) git directory
}

// Name returns the folder name of the repository.
func (r Repo) Name() string {
	if r.WorkTree != "" {
		return filepath.Base(r.WorkTree)
	}
	return strings.TrimSuffix(filepath.Base(r.GitDir), ".git")
}

// Dir returns the directory git commands should run in.
func (r Repo) Dir() string {
	if r.WorkTree != "" {
		return r.WorkTree
	}
	return r.GitDir
}

// OpenRepo locates the repository containing path.
// Linked worktrees resolve to the common git directory so all worktrees
// share one report and one local store.
func OpenRepo(ctx context.Context, path string) (Repo, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--path-format=absolute", "--git-common-dir", "--is-bare-repository")
	if err != nil {
		return Repo{}, fmt.Errorf("%w: %s", ErrNotRepo, path)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		return Repo{}, fmt.Errorf("unexpected rev-parse output %q", out)
	}

	repo := Repo{GitDir: lines[0]}
	if lines[1] == "true" {
		return repo, nil
	}

	top, err := outputGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return Repo{}, fmt.Errorf("resolve work tree: %w", err)
	}
	repo.WorkTree = strings.TrimSpace(string(top))
	return repo, nil
}

// ResolveCommit resolves a revision expression to a full commit id.
func ResolveCommit(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--verify", "--quiet", "--end-of-options", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("unknown revision %q", rev)
	}
	return strings.TrimSpace(string(out)), nil
}

// RefExists reports whether ref resolves to an object.
func RefExists(ctx context.Context, dir, ref string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", ref) == nil
}
