package update

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/storage"
	"github.com/raphi011/lineage/internal/store"
)

type fixture struct {
	repo   git.Repo
	store  store.Store
	commit map[string]lineage.Revision // message -> id
}

// setupMergedFeature builds
//
//	a - b ------- m   (main)
//	     \       /
//	      f1 - f2     (feature, merged and deleted)
func setupMergedFeature(t *testing.T) *fixture {
	t.Helper()
	if err := git.CheckGit(); err != nil {
		t.Skip("git not installed")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
		return strings.TrimSpace(string(out))
	}

	f := &fixture{commit: make(map[string]lineage.Revision)}
	commit := func(msg string) {
		run("commit", "-q", "--allow-empty", "-m", msg)
		f.commit[msg] = lineage.Revision(run("rev-parse", "HEAD"))
	}

	run("init", "-q", "-b", "main")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")

	commit("a")
	commit("b")
	run("checkout", "-q", "-b", "feature")
	commit("f1")
	commit("f2")
	run("checkout", "-q", "main")
	run("merge", "-q", "--no-ff", "-m", "Merge branch 'feature'", "feature")
	f.commit["m"] = lineage.Revision(run("rev-parse", "HEAD"))
	run("branch", "-q", "-D", "feature")

	f.repo, err = git.OpenRepo(context.Background(), dir)
	if err != nil {
		t.Fatalf("OpenRepo failed: %v", err)
	}
	f.store, err = store.Open(context.Background(), f.repo, config.StoreConfig{Backend: config.BackendNotes})
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return f
}

func (f *fixture) options() Options {
	return Options{Repo: f.repo, Store: f.store}
}

func TestRun_WithoutMergePattern(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	res, err := Run(ctx, f.options())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Revisions != 5 {
		t.Errorf("Revisions = %d, want 5", res.Revisions)
	}
	if res.Added != 3 {
		t.Errorf("Added = %d, want 3", res.Added)
	}
	for _, msg := range []string{"a", "b", "m"} {
		if got := res.Outcome.Assigned[f.commit[msg]]; got != "main" {
			t.Errorf("%s assigned %q, want main", msg, got)
		}
	}
	if !slices.Equal(res.Outcome.UnresolvedLeaves, []lineage.Revision{f.commit["f2"]}) {
		t.Errorf("UnresolvedLeaves = %v, want [f2]", res.Outcome.UnresolvedLeaves)
	}

	dir := filepath.Join(f.repo.GitDir, storage.StateDirName)
	report, err := cache.Load(dir)
	if err != nil {
		t.Fatalf("cache.Load failed: %v", err)
	}
	if report.Assigned != 3 || len(report.UnresolvedLeaves) != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Tips["refs/heads/main"] != string(f.commit["m"]) {
		t.Errorf("report tips = %v", report.Tips)
	}
}

func TestRun_MergePatternNamesDeletedBranch(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	opts := f.options()
	opts.MergePattern = regexp.MustCompile(`^Merge branch '([^']+)'`)

	res, err := Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Added != 5 {
		t.Errorf("Added = %d, want 5", res.Added)
	}

	known, err := f.store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := map[string]lineage.Branch{"a": "main", "b": "main", "m": "main", "f1": "feature", "f2": "feature"}
	for msg, b := range want {
		if known[f.commit[msg]] != b {
			t.Errorf("%s stored as %q, want %q", msg, known[f.commit[msg]], b)
		}
	}
	if len(res.Outcome.UnresolvedLeaves) != 0 {
		t.Errorf("UnresolvedLeaves = %v", res.Outcome.UnresolvedLeaves)
	}
}

func TestRun_SecondRunAddsNothing(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	opts := f.options()
	opts.MergePattern = regexp.MustCompile(`^Merge branch '([^']+)'`)

	if _, err := Run(ctx, opts); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	res, err := Run(ctx, opts)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if res.Added != 0 || len(res.Outcome.Assigned) != 0 {
		t.Errorf("second run added %d, assigned %v", res.Added, res.Outcome.Assigned)
	}
	if res.Known != 5 {
		t.Errorf("Known = %d, want 5", res.Known)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	opts := f.options()
	opts.DryRun = true

	res, err := Run(ctx, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Outcome.Assigned) != 3 || res.Added != 0 {
		t.Errorf("assigned %d, added %d", len(res.Outcome.Assigned), res.Added)
	}

	known, err := f.store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(known) != 0 {
		t.Errorf("dry run wrote %d assignments", len(known))
	}
	if _, err := cache.Load(filepath.Join(f.repo.GitDir, storage.StateDirName)); !errors.Is(err, cache.ErrNoReport) {
		t.Errorf("dry run wrote a report: %v", err)
	}
}

func TestRun_PatternWarning(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)

	opts := f.options()
	opts.DryRun = true
	// both groups match "Merge branch 'feature'"
	opts.MergePattern = regexp.MustCompile(`^(Merge) branch '([^']+)'`)

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Revision != f.commit["m"] || res.Warnings[0].Groups != 2 {
		t.Errorf("Warnings = %+v", res.Warnings)
	}
	if len(res.Report.Warnings) != 1 {
		t.Errorf("report warnings = %v", res.Report.Warnings)
	}
}

func TestRun_KnownAssignmentsWin(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	if err := f.store.Set(ctx, f.commit["f2"], "topic", false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	res, err := Run(ctx, f.options())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, ok := res.Outcome.Assigned[f.commit["f2"]]; ok {
		t.Error("known revision must not be reassigned")
	}
	// f1 takes the branch of its only, known child
	if got := res.Outcome.Assigned[f.commit["f1"]]; got != "topic" {
		t.Errorf("f1 assigned %q, want topic", got)
	}
	if len(res.Outcome.UnresolvedLeaves) != 0 {
		t.Errorf("UnresolvedLeaves = %v", res.Outcome.UnresolvedLeaves)
	}
}

func TestNewReport(t *testing.T) {
	t.Parallel()

	o := &lineage.Outcome{
		Assigned:         map[lineage.Revision]lineage.Branch{"a": "main"},
		UnresolvedRoots:  []lineage.Revision{"r"},
		UnresolvedLeaves: []lineage.Revision{"l"},
		Ambiguous: map[lineage.Revision][]lineage.Branch{
			"z": {"x", "y"},
			"c": {"p", "q"},
		},
	}
	snap := &Snapshot{
		Tips:     map[string]string{"refs/heads/main": "a"},
		Warnings: []lineage.Warning{{Revision: "m", Groups: 0}},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	r := NewReport(o, snap, "notes refs/notes/lineage", now)

	if r.GeneratedAt.Location() != time.UTC || !r.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v", r.GeneratedAt)
	}
	if r.Assigned != 1 || r.Open() != 4 {
		t.Errorf("Assigned = %d, Open() = %d", r.Assigned, r.Open())
	}
	if r.Ambiguous[0].Revision != "c" || r.Ambiguous[1].Revision != "z" {
		t.Errorf("Ambiguous not sorted: %+v", r.Ambiguous)
	}
	if len(r.Warnings) != 1 {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

func TestTips_MatchReportAfterRun(t *testing.T) {
	t.Parallel()
	f := setupMergedFeature(t)
	ctx := context.Background()

	res, err := Run(ctx, f.options())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	tips, err := Tips(ctx, f.repo, false)
	if err != nil {
		t.Fatalf("Tips failed: %v", err)
	}
	if tips["refs/heads/main"] != string(f.commit["m"]) {
		t.Errorf("tips = %v, want refs/heads/main at m", tips)
	}
	if res.Report.IsStale(tips) {
		t.Error("fresh report reported stale")
	}

	cmd := exec.Command("git", "branch", "topic", string(f.commit["b"]))
	cmd.Dir = f.repo.WorkTree
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git branch: %v\n%s", err, out)
	}
	tips, err = Tips(ctx, f.repo, false)
	if err != nil {
		t.Fatalf("Tips failed: %v", err)
	}
	if !res.Report.IsStale(tips) {
		t.Error("report should be stale after a new branch")
	}
}
