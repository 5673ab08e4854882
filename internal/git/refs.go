package git

import (
	"context"
	"fmt"
	"strings"
)

// BranchRef is a branch ref and the commit it points at.
type BranchRef struct {
	Ref    string // full ref name
	Branch string // branch name, remote prefix stripped
	Remote string // remote name for remote-tracking refs
	Commit string
}

// ListBranchPointers lists local branches and, if remotes is set,
// remote-tracking branches. Symbolic remote HEADs are skipped.
func ListBranchPointers(ctx context.Context, dir string, remotes bool) ([]BranchRef, error) {
	args := []string{"for-each-ref", "--format=%(objectname)%09%(symref)%09%(refname)", "refs/heads/"}
	if remotes {
		args = append(args, "refs/remotes/")
	}
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	remoteNames, err := ListRemotes(ctx, dir)
	if err != nil {
		return nil, err
	}
	return parseBranchRefs(string(out), remoteNames), nil
}

// parseBranchRefs parses for-each-ref lines "objectname\tsymref\trefname".
func parseBranchRefs(out string, remotes []string) []BranchRef {
	var refs []BranchRef
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 || parts[1] != "" {
			continue
		}
		commit, ref := parts[0], parts[2]

		if name, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
			refs = append(refs, BranchRef{Ref: ref, Branch: name, Commit: commit})
			continue
		}
		if rest, ok := strings.CutPrefix(ref, "refs/remotes/"); ok {
			remote, name := splitRemote(rest, remotes)
			if name == "" || name == "HEAD" {
				continue
			}
			refs = append(refs, BranchRef{Ref: ref, Branch: name, Remote: remote, Commit: commit})
		}
	}
	return refs
}

// splitRemote splits "origin/feature/x" into remote and branch. Remote names
// may contain slashes, so the longest configured remote prefix wins.
func splitRemote(rest string, remotes []string) (remote, branch string) {
	for _, r := range remotes {
		if name, ok := strings.CutPrefix(rest, r+"/"); ok && len(r) > len(remote) {
			remote, branch = r, name
		}
	}
	if remote != "" {
		return remote, branch
	}
	remote, branch, _ = strings.Cut(rest, "/")
	return remote, branch
}

// ListRemotes returns the configured remote names.
func ListRemotes(ctx context.Context, dir string) ([]string, error) {
	out, err := outputGit(ctx, dir, "remote")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	return strings.Fields(string(out)), nil
}
