package git

import (
	"context"
	"io"

	"github.com/raphi011/lineage/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// inputGit executes a git command feeding stdin and returns stdout.
func inputGit(ctx context.Context, dir string, stdin io.Reader, args ...string) ([]byte, error) {
	return cmd.InputContext(ctx, "", stdin, "git", gitArgs(dir, args)...)
}
