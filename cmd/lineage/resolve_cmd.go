package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/hooks"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/ui/prompt"
)

// choice is one decision made during resolve.
type choice struct {
	rev    lineage.Revision
	branch lineage.Branch
}

// openItem is a revision waiting for a decision.
type openItem struct {
	rev        lineage.Revision
	candidates []string // empty for unresolved roots and leaves
	kind       string
}

func newResolveCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   "Name open commits interactively",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Walk through the commits 'lineage status' lists and name them.

Ambiguous commits offer their candidate branches; unresolved roots and
leaves ask for a name, with completion from known branches. Press "s" in
a list to skip a commit, esc to stop. The choices are stored after
confirmation and act as ground truth for the next 'lineage update'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("resolve needs an interactive terminal: use 'lineage set' instead")
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			matches, env, err := hf.prepare(s.cfg, hooks.TriggerResolve)
			if err != nil {
				return err
			}

			r, stale, err := loadReport(ctx, s)
			if err != nil {
				return err
			}
			if stale {
				l.Warnf("branches moved since the last update, run 'lineage update' first for current results")
			}

			items := openItems(r)
			if len(items) == 0 {
				out.Println("Nothing left to resolve")
				return nil
			}

			names, err := knownBranches(ctx, s)
			if err != nil {
				return err
			}

			choices, err := askChoices(ctx, s, items, names)
			if err != nil {
				return err
			}
			if len(choices) == 0 {
				return nil
			}

			confirm, err := prompt.Confirm(fmt.Sprintf("Store %d assignments?", len(choices)))
			if err != nil {
				return err
			}
			if !confirm.Confirmed {
				return nil
			}

			revs := make([]lineage.Revision, 0, len(choices))
			for _, c := range choices {
				if err := s.store.Set(ctx, c.rev, c.branch, false); err != nil {
					return err
				}
				revs = append(revs, c.rev)
				out.Printf("%s → %s\n", c.rev.Short(), c.branch)
			}
			dropFromReport(ctx, s, revs)
			l.Println("Run 'lineage update' to propagate the new assignments.")

			hctx := hooks.NewContext(s.repo, s.store.Name(), hooks.TriggerResolve, env)
			hctx.Assigned = len(choices)
			hctx.Open = len(items) - len(choices)
			return hf.run(ctx, matches, hctx)
		},
	}

	hf.register(cmd)

	return cmd
}

// openItems lists ambiguous revisions first, then unresolved leaves and
// roots.
func openItems(r *cache.Report) []openItem {
	var items []openItem
	for _, a := range r.Ambiguous {
		items = append(items, openItem{rev: lineage.Revision(a.Revision), candidates: a.Candidates, kind: "ambiguous"})
	}
	for _, rev := range r.UnresolvedLeaves {
		items = append(items, openItem{rev: lineage.Revision(rev), kind: "unresolved leaf"})
	}
	for _, rev := range r.UnresolvedRoots {
		items = append(items, openItem{rev: lineage.Revision(rev), kind: "unresolved root"})
	}
	return items
}

// askChoices prompts for every item until the user cancels.
func askChoices(ctx context.Context, s *session, items []openItem, names []string) ([]choice, error) {
	var choices []choice
	for i, item := range items {
		// the subject only decorates the prompt
		subject, _ := git.Subject(ctx, s.repo.Dir(), string(item.rev))
		title := fmt.Sprintf("[%d/%d] %s %s (%s)", i+1, len(items), item.rev.Short(), subject, item.kind)

		if len(item.candidates) > 0 {
			res, err := prompt.Select(title, item.candidates)
			if err != nil {
				return nil, err
			}
			if res.Cancelled {
				return choices, nil
			}
			if res.Skipped {
				continue
			}
			choices = append(choices, choice{rev: item.rev, branch: lineage.Branch(res.Value)})
			continue
		}

		res, err := prompt.TextInput(title, prompt.TextOptions{
			Placeholder: "branch name (empty to skip)",
			Suggestions: names,
		})
		if err != nil {
			return nil, err
		}
		if res.Cancelled {
			return choices, nil
		}
		if res.Value == "" {
			continue
		}
		choices = append(choices, choice{rev: item.rev, branch: lineage.Branch(res.Value)})
	}
	return choices, nil
}
