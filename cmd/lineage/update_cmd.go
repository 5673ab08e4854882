package main

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/hooks"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/ui/progress"
	"github.com/raphi011/lineage/internal/ui/static"
	"github.com/raphi011/lineage/internal/update"
)

func newUpdateCmd() *cobra.Command {
	var (
		dryRun bool
		hf     hookFlags
	)

	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Infer and store branch names for new commits",
		Aliases: []string{"up"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Infer branch names for every commit that does not have one yet.

Reads all commits reachable from branches and tags, takes the stored
assignments as ground truth and names what can be decided from branch
refs, mainline names and (with merge_pattern) merge messages. New
assignments are stored, existing ones are never changed.

Commits that stay open are listed by 'lineage status' and can be named
with 'lineage resolve' or 'lineage set'.`,
		Example: `  lineage update            # Assign and store
  lineage update --dry-run  # Show what would be assigned
  lineage update --no-hook  # Skip configured hooks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var matches []hooks.HookMatch
			var env map[string]string
			if !dryRun {
				matches, env, err = hf.prepare(s.cfg, hooks.TriggerUpdate)
				if err != nil {
					return err
				}
			}

			sp := progress.NewSpinner("Inferring branches...", quiet || l.IsVerbose())
			sp.Start()
			res, err := update.Run(ctx, update.Options{
				Repo:         s.repo,
				Store:        s.store,
				MainBranches: s.mainBranches(),
				MergePattern: s.cfg.MergeRegexp(),
				RemoteRefs:   s.cfg.RemoteRefs,
				DryRun:       dryRun,
			})
			sp.Stop()
			if err != nil {
				return err
			}

			for _, w := range res.Warnings {
				l.Warnf("%s", w)
			}

			if dryRun {
				out.Styled(static.AssignmentTable(assignmentRows(res.Outcome.Assigned)))
				out.Printf("Would assign %d of %d revisions (%d known), %d open\n",
					len(res.Outcome.Assigned), res.Revisions, res.Known, res.Report.Open())
				return nil
			}

			out.Printf("Assigned %d of %d revisions (%d known), %d open\n",
				res.Added, res.Revisions, res.Known, res.Report.Open())
			if res.Report.Open() > 0 {
				l.Println("Run 'lineage status' to see open revisions.")
			}

			hctx := hooks.NewContext(s.repo, s.store.Name(), hooks.TriggerUpdate, env)
			hctx.Assigned = res.Added
			hctx.Open = res.Report.Open()
			return hf.run(ctx, matches, hctx)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show assignments without storing them")
	hf.register(cmd)

	return cmd
}

// assignmentRows sorts assignments by branch, then revision.
func assignmentRows(m map[lineage.Revision]lineage.Branch) []static.Assignment {
	rows := make([]static.Assignment, 0, len(m))
	for _, rev := range slices.Sorted(maps.Keys(m)) {
		rows = append(rows, static.Assignment{Revision: string(rev), Branch: string(m[rev])})
	}
	slices.SortStableFunc(rows, func(a, b static.Assignment) int {
		return strings.Compare(a.Branch, b.Branch)
	})
	return rows
}
