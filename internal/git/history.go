package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// History is a snapshot of commits and their parent links.
type History struct {
	// Commits lists commit ids newest first, as rev-list reports them.
	Commits []string
	// Parents maps every commit to its ordered parents. Parents outside
	// the snapshot (shallow boundary) are dropped.
	Parents map[string][]string
}

// Merge is a merge commit with its message.
type Merge struct {
	Commit  string
	Parents []string
	Message string
}

// historyRevs returns the rev-list arguments selecting the analysed set.
// Notes refs are never included.
func historyRevs(ctx context.Context, dir string, remotes bool) []string {
	revs := []string{"--branches", "--tags"}
	if remotes {
		revs = append(revs, "--remotes")
	}
	if RefExists(ctx, dir, "HEAD") {
		revs = append(revs, "HEAD")
	}
	return revs
}

// LoadHistory reads every commit reachable from local branches, tags, HEAD
// and, if remotes is set, remote-tracking branches.
func LoadHistory(ctx context.Context, dir string, remotes bool) (*History, error) {
	args := append([]string{"rev-list", "--parents"}, historyRevs(ctx, dir, remotes)...)
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("rev-list: %w", err)
	}
	return parseRevList(out)
}

// parseRevList parses "commit parent..." lines.
func parseRevList(out []byte) (*History, error) {
	h := &History{Parents: make(map[string][]string)}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		commit := fields[0]
		if _, dup := h.Parents[commit]; dup {
			continue
		}
		h.Commits = append(h.Commits, commit)
		h.Parents[commit] = fields[1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rev-list output: %w", err)
	}

	for commit, parents := range h.Parents {
		kept := parents[:0]
		for _, p := range parents {
			if _, ok := h.Parents[p]; ok {
				kept = append(kept, p)
			}
		}
		h.Parents[commit] = kept
	}
	return h, nil
}

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// LoadMergeMessages returns the two-or-more-parent commits of the analysed
// set together with their full messages.
func LoadMergeMessages(ctx context.Context, dir string, remotes bool) ([]Merge, error) {
	args := append([]string{"log", "--merges", "--no-show-signature", "--format=%H" + fieldSep + "%P" + fieldSep + "%B" + recordSep},
		historyRevs(ctx, dir, remotes)...)
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("log merges: %w", err)
	}
	return parseMergeLog(string(out)), nil
}

// parseMergeLog parses records written with the LoadMergeMessages format.
func parseMergeLog(out string) []Merge {
	var merges []Merge
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 3)
		if len(fields) != 3 {
			continue
		}
		merges = append(merges, Merge{
			Commit:  fields[0],
			Parents: strings.Fields(fields[1]),
			Message: strings.TrimRight(fields[2], "\n"),
		})
	}
	return merges
}

// Subject returns the first line of the commit message of rev.
func Subject(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "log", "-1", "--no-show-signature", "--format=%s", rev, "--")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
