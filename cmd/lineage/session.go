package main

import (
	"context"
	"fmt"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/storage"
	"github.com/raphi011/lineage/internal/store"
)

// session bundles what repository commands work on.
type session struct {
	repo  git.Repo
	cfg   *config.Config
	store store.Store
}

// openSession finds the repository around the work dir, merges its local
// config and opens the configured store.
func openSession(ctx context.Context) (*session, error) {
	repo, cfg, err := openRepo(ctx)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, repo, cfg.Store)
	if err != nil {
		return nil, err
	}
	return &session{repo: repo, cfg: cfg, store: st}, nil
}

// openRepo finds the repository and its effective config without opening
// the store.
func openRepo(ctx context.Context) (git.Repo, *config.Config, error) {
	repo, err := git.OpenRepo(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return git.Repo{}, nil, err
	}
	cfg, err := resolveConfig(repo, config.FromContext(ctx))
	if err != nil {
		return git.Repo{}, nil, err
	}
	return repo, cfg, nil
}

// resolveConfig merges the local config of repo over global. Bare
// repositories have no work tree and use global as is.
func resolveConfig(repo git.Repo, global *config.Config) (*config.Config, error) {
	if repo.WorkTree == "" {
		return global, nil
	}
	return config.Resolve(global, repo.WorkTree)
}

func (s *session) Close() {
	_ = s.store.Close()
}

// stateDir is where the report cache lives.
func (s *session) stateDir() string {
	return storage.StatePath(s.repo.GitDir)
}

func (s *session) mainBranches() []lineage.Branch {
	out := make([]lineage.Branch, len(s.cfg.MainBranches))
	for i, b := range s.cfg.MainBranches {
		out[i] = lineage.Branch(b)
	}
	return out
}

// resolveRevs turns user revisions into commit ids, defaulting to HEAD.
func (s *session) resolveRevs(ctx context.Context, revs []string) ([]lineage.Revision, error) {
	if len(revs) == 0 {
		revs = []string{"HEAD"}
	}
	out := make([]lineage.Revision, 0, len(revs))
	for _, r := range revs {
		id, err := git.ResolveCommit(ctx, s.repo.Dir(), r)
		if err != nil {
			return nil, fmt.Errorf("unknown revision %q: %w", r, err)
		}
		out = append(out, lineage.Revision(id))
	}
	return out, nil
}

// notesStore returns the store as a notes store, or an error naming the
// configured backend.
func (s *session) notesStore() (*store.NotesStore, error) {
	ns, ok := s.store.(*store.NotesStore)
	if !ok {
		return nil, fmt.Errorf("store backend %q cannot be shared: set store.backend = %q", s.cfg.Store.Backend, config.BackendNotes)
	}
	return ns, nil
}
