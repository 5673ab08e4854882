// Package update runs one inference pass over a repository: it reads the
// history snapshot, infers branch names and persists the new assignments.
package update

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/storage"
	"github.com/raphi011/lineage/internal/store"
)

// Options configures a run.
type Options struct {
	Repo  git.Repo
	Store store.Store

	MainBranches []lineage.Branch
	MergePattern *regexp.Regexp // nil disables merge message pointers
	RemoteRefs   bool

	// DryRun infers without writing assignments or the report.
	DryRun bool
}

// Result summarises a run.
type Result struct {
	Outcome   *lineage.Outcome
	Revisions int // commits analysed
	Known     int // assignments read from the store
	Added     int // assignments written
	Warnings  []lineage.Warning
	Report    *cache.Report
}

// Snapshot is the repository state inference works on.
type Snapshot struct {
	Order    []lineage.Revision // parents before children
	Parents  map[lineage.Revision][]lineage.Revision
	Pointers lineage.Pointers
	Tips     map[string]string // ref -> commit
	Warnings []lineage.Warning
}

// Run performs one pass. Fatal input errors leave the store untouched.
func Run(ctx context.Context, opts Options) (*Result, error) {
	l := log.FromContext(ctx)

	snap, err := Load(ctx, opts.Repo, opts.MergePattern, opts.RemoteRefs)
	if err != nil {
		return nil, err
	}

	known, err := opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	l.Debug("snapshot loaded", "revisions", len(snap.Order), "pointers", len(snap.Pointers), "known", len(known))

	tree, err := lineage.BuildTree(snap.Order, lineage.FirstParents(snap.Parents))
	if err != nil {
		return nil, err
	}

	outcome, err := lineage.Infer(lineage.Input{
		Tree:         tree,
		Known:        known,
		Pointers:     snap.Pointers,
		MainBranches: opts.MainBranches,
	})
	if err != nil {
		return nil, err
	}
	l.Debug("inference done", "roots", len(tree.Roots), "assigned", len(outcome.Assigned))

	res := &Result{
		Outcome:   outcome,
		Revisions: len(snap.Order),
		Known:     len(known),
		Warnings:  snap.Warnings,
		Report:    NewReport(outcome, snap, opts.Store.Name(), time.Now()),
	}
	if opts.DryRun {
		return res, nil
	}

	res.Added, err = opts.Store.Add(ctx, outcome.Assigned)
	if err != nil {
		return nil, fmt.Errorf("store assignments: %w", err)
	}

	dir, err := storage.StateDir(opts.Repo.GitDir)
	if err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if err := cache.Save(dir, res.Report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return res, nil
}

// Load reads history, branch pointers and, if pattern is set, merge message
// pointers. The revision order is validated for cycles.
func Load(ctx context.Context, repo git.Repo, pattern *regexp.Regexp, remotes bool) (*Snapshot, error) {
	dir := repo.Dir()

	hist, err := git.LoadHistory(ctx, dir, remotes)
	if err != nil {
		return nil, err
	}

	keys := make([]lineage.Revision, len(hist.Commits))
	parents := make(map[lineage.Revision][]lineage.Revision, len(hist.Commits))
	// oldest first, so roots come out in creation order
	for i, c := range hist.Commits {
		keys[len(keys)-1-i] = lineage.Revision(c)
	}
	for c, ps := range hist.Parents {
		revs := make([]lineage.Revision, len(ps))
		for i, p := range ps {
			revs[i] = lineage.Revision(p)
		}
		parents[lineage.Revision(c)] = revs
	}

	order, err := lineage.TopoSort(keys, parents)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Order:    order,
		Parents:  parents,
		Pointers: make(lineage.Pointers),
		Tips:     make(map[string]string),
	}

	refs, err := git.ListBranchPointers(ctx, dir, remotes)
	if err != nil {
		return nil, err
	}
	for _, r := range refs {
		snap.Tips[r.Ref] = r.Commit
		rev := lineage.Revision(r.Commit)
		if _, ok := parents[rev]; !ok {
			continue
		}
		snap.Pointers.Add(rev, lineage.Branch(r.Branch))
	}

	if pattern != nil {
		merges, err := git.LoadMergeMessages(ctx, dir, remotes)
		if err != nil {
			return nil, err
		}
		commits := make([]lineage.Commit, len(merges))
		for i, m := range merges {
			c := lineage.Commit{Revision: lineage.Revision(m.Commit), Message: m.Message}
			for _, p := range m.Parents {
				c.Parents = append(c.Parents, lineage.Revision(p))
			}
			commits[i] = c
		}
		snap.Warnings = lineage.MergePointers(pattern, commits, snap.Pointers)
	}

	return snap, nil
}

// NewReport converts an outcome into its cached form.
func NewReport(o *lineage.Outcome, snap *Snapshot, storeName string, now time.Time) *cache.Report {
	r := &cache.Report{
		GeneratedAt:      now.UTC(),
		Store:            storeName,
		Assigned:         len(o.Assigned),
		UnresolvedRoots:  revStrings(o.UnresolvedRoots),
		UnresolvedLeaves: revStrings(o.UnresolvedLeaves),
		Ambiguous:        []cache.Ambiguity{},
		Tips:             snap.Tips,
	}

	revs := make([]lineage.Revision, 0, len(o.Ambiguous))
	for rev := range o.Ambiguous {
		revs = append(revs, rev)
	}
	slices.Sort(revs)
	for _, rev := range revs {
		cands := make([]string, len(o.Ambiguous[rev]))
		for i, b := range o.Ambiguous[rev] {
			cands[i] = string(b)
		}
		r.Ambiguous = append(r.Ambiguous, cache.Ambiguity{Revision: string(rev), Candidates: cands})
	}

	for _, w := range snap.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

func revStrings(revs []lineage.Revision) []string {
	out := make([]string, len(revs))
	for i, r := range revs {
		out[i] = string(r)
	}
	return out
}

// Tips returns the branch refs a report is compared against, ref -> commit.
func Tips(ctx context.Context, repo git.Repo, remotes bool) (map[string]string, error) {
	refs, err := git.ListBranchPointers(ctx, repo.Dir(), remotes)
	if err != nil {
		return nil, err
	}
	tips := make(map[string]string, len(refs))
	for _, r := range refs {
		tips[r.Ref] = r.Commit
	}
	return tips, nil
}
