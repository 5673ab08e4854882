package doctor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/storage"
	"github.com/raphi011/lineage/internal/store"
	"github.com/raphi011/lineage/internal/update"
)

func ok(cat IssueCategory, key, desc string) Finding {
	return Finding{Category: cat, Key: key, Status: StatusOK, Description: desc}
}

func warn(cat IssueCategory, key, desc, hint string) Finding {
	return Finding{Category: cat, Key: key, Status: StatusWarn, Description: desc, Hint: hint}
}

func fail(cat IssueCategory, key, desc, hint string) Finding {
	return Finding{Category: cat, Key: key, Status: StatusError, Description: desc, Hint: hint}
}

func checkGit() Finding {
	if err := git.CheckGit(); err != nil {
		return fail(CategoryTools, "git", "git not found", "install git (https://git-scm.com)")
	}
	return ok(CategoryTools, "git", "git is available")
}

func checkRepo(ctx context.Context, dir string) (git.Repo, Finding) {
	repo, err := git.OpenRepo(ctx, dir)
	if err != nil {
		return git.Repo{}, fail(CategoryRepo, dir, err.Error(), "run lineage inside a git repository")
	}
	return repo, ok(CategoryRepo, repo.Name(), "repository at "+repo.Dir())
}

// checkMainline warns when no configured mainline branch exists, because
// roots without a known assignment then stay unresolved.
func checkMainline(ctx context.Context, repo git.Repo, cfg *config.Config) Finding {
	refs, err := git.ListBranchPointers(ctx, repo.Dir(), cfg.RemoteRefs)
	if err != nil {
		return fail(CategoryRepo, "branches", err.Error(), "")
	}
	for _, r := range refs {
		if slices.Contains(cfg.MainBranches, r.Branch) {
			return ok(CategoryRepo, "branches", fmt.Sprintf("mainline branch %q found", r.Branch))
		}
	}
	return warn(CategoryRepo, "branches",
		"no mainline branch ("+strings.Join(cfg.MainBranches, ", ")+") found",
		"set main_branches or assign the root with 'lineage set'")
}

func checkConfig(cfg *config.Config, cfgErr error) []Finding {
	if cfgErr != nil {
		return []Finding{fail(CategoryConfig, "config", cfgErr.Error(), "fix the file or run 'lineage config init -f'")}
	}
	findings := []Finding{ok(CategoryConfig, "config", "configuration is valid")}
	if re := cfg.MergeRegexp(); re != nil {
		findings = append(findings, ok(CategoryConfig, "merge_pattern",
			fmt.Sprintf("merge pattern %q has %d capture groups", re.String(), re.NumSubexp())))
	} else {
		findings = append(findings, warn(CategoryConfig, "merge_pattern",
			"merge_pattern not set",
			"branches deleted after merging can only be recovered from merge messages"))
	}
	return findings
}

func checkStore(ctx context.Context, repo git.Repo, cfg *config.Config) []Finding {
	var findings []Finding

	s, err := store.Open(ctx, repo, cfg.Store)
	if err != nil {
		return []Finding{fail(CategoryStore, cfg.Store.Backend, err.Error(), "")}
	}
	defer s.Close()

	known, err := s.Load(ctx)
	if err != nil {
		return []Finding{fail(CategoryStore, s.Name(), err.Error(), "")}
	}
	findings = append(findings, ok(CategoryStore, s.Name(), fmt.Sprintf("%d assignments stored", len(known))))

	if cfg.Store.Backend != config.BackendNotes {
		return findings
	}
	ref := cfg.Store.NotesRef
	if !git.RefExists(ctx, repo.Dir(), ref) {
		findings = append(findings, warn(CategoryStore, ref, "notes ref does not exist yet",
			"run 'lineage update' or 'lineage fetch'"))
	}
	remotes, err := git.ListRemotes(ctx, repo.Dir())
	if err != nil {
		return append(findings, fail(CategoryStore, "remotes", err.Error(), ""))
	}
	if len(remotes) > 0 && !slices.Contains(remotes, cfg.Store.Remote) {
		findings = append(findings, warn(CategoryStore, cfg.Store.Remote,
			fmt.Sprintf("remote %q not configured", cfg.Store.Remote),
			"set store.remote or pass the remote to push and fetch"))
	}
	return findings
}

func checkReport(ctx context.Context, repo git.Repo, cfg *config.Config) Finding {
	dir := storage.StatePath(repo.GitDir)
	r, err := cache.Load(dir)
	switch {
	case errors.Is(err, cache.ErrNoReport):
		return warn(CategoryReport, "report", "no report cached", "run 'lineage update'")
	case err != nil:
		f := fail(CategoryReport, "report", err.Error(), "run 'lineage doctor --fix' to remove it")
		f.FixAction = FixRemoveReport
		f.Path = cache.ReportPath(dir)
		return f
	}

	tips, err := update.Tips(ctx, repo, cfg.RemoteRefs)
	if err != nil {
		return fail(CategoryReport, "report", err.Error(), "")
	}
	if r.IsStale(tips) {
		return warn(CategoryReport, "report", "branches moved since the last update", "run 'lineage update'")
	}
	return ok(CategoryReport, "report", fmt.Sprintf("report is current, %d open", r.Open()))
}
