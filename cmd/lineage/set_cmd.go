package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/hooks"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/store"
	"github.com/raphi011/lineage/internal/suggest"
)

func newSetCmd() *cobra.Command {
	var (
		force bool
		hf    hookFlags
	)

	cmd := &cobra.Command{
		Use:               "set <branch> [revision...]",
		Short:             "Assign a branch to commits manually",
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeBranchNames,
		Long: `Assign a branch to one or more commits (default HEAD).

Manual assignments are ground truth for the next 'lineage update', which
propagates them to the surrounding commits. An existing assignment is
only replaced with --force.

A branch name that is neither stored nor an existing branch triggers a
warning listing similar names.`,
		Example: `  lineage set feature/login            # Name HEAD
  lineage set main abc1234 def5678     # Name two commits
  lineage set -f hotfix HEAD~2         # Replace an existing name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			branch := strings.TrimSpace(args[0])
			if branch == "" {
				return fmt.Errorf("branch name must not be empty")
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			matches, env, err := hf.prepare(s.cfg, hooks.TriggerSet)
			if err != nil {
				return err
			}

			revs, err := s.resolveRevs(ctx, args[1:])
			if err != nil {
				return err
			}

			names, err := knownBranches(ctx, s)
			if err != nil {
				return err
			}
			if !slices.Contains(names, branch) {
				if similar := suggest.Similar(branch, names, 3); len(similar) > 0 {
					l.Warnf("branch %q not seen before, did you mean: %s?", branch, strings.Join(similar, ", "))
				}
			}

			for _, rev := range revs {
				err := s.store.Set(ctx, rev, lineage.Branch(branch), force)
				var conflict *store.ConflictError
				if errors.As(err, &conflict) {
					return fmt.Errorf("%s is already assigned to %q (use -f to replace)", rev.Short(), conflict.Existing)
				}
				if err != nil {
					return err
				}
				out.Printf("%s → %s\n", rev.Short(), branch)
			}

			dropFromReport(ctx, s, revs)

			hctx := hooks.NewContext(s.repo, s.store.Name(), hooks.TriggerSet, env)
			hctx.Assigned = len(revs)
			hctx.Branch = branch
			hctx.Revision = string(revs[len(revs)-1])
			return hf.run(ctx, matches, hctx)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing assignments")
	hf.register(cmd)

	return cmd
}

// knownBranches returns the sorted names that are stored or currently
// point at a commit.
func knownBranches(ctx context.Context, s *session) ([]string, error) {
	known, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, b := range known {
		set[string(b)] = struct{}{}
	}

	refs, err := git.ListBranchPointers(ctx, s.repo.Dir(), s.cfg.RemoteRefs)
	if err != nil {
		return nil, err
	}
	for _, r := range refs {
		set[r.Branch] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set)), nil
}

// dropFromReport removes manually named revisions from the cached report.
// A missing report is fine.
func dropFromReport(ctx context.Context, s *session, revs []lineage.Revision) {
	err := cache.Update(s.stateDir(), func(r *cache.Report) error {
		for _, rev := range revs {
			r.Drop(string(rev))
		}
		return nil
	})
	if err != nil && !errors.Is(err, cache.ErrNoReport) {
		log.FromContext(ctx).Warnf("failed to update report: %v", err)
	}
}

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <revision...>",
		Short: "Remove stored assignments",
		Long: `Remove the stored branch of commits.

The next 'lineage update' infers them again, which may yield the same
name. Use this to undo a mistaken 'lineage set'.`,
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			revs, err := s.resolveRevs(ctx, args)
			if err != nil {
				return err
			}
			for _, rev := range revs {
				if err := s.store.Remove(ctx, rev); err != nil {
					return err
				}
				out.Printf("%s unset\n", rev.Short())
			}
			return nil
		},
	}

	return cmd
}
