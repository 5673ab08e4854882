package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/hooks"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
)

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "push [remote]",
		Short:             "Push assignments to a remote",
		GroupID:           GroupSync,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRemotes,
		Long: `Push the notes ref holding assignments to a remote (default store.remote).

Only fast-forwards are pushed: if the remote has assignments this clone
does not, run 'lineage fetch' first. Requires the notes backend.`,
		Example: `  lineage push
  lineage push upstream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ns, err := s.notesStore()
			if err != nil {
				return err
			}
			remote := s.cfg.Store.Remote
			if len(args) > 0 {
				remote = args[0]
			}

			if err := git.PushNotes(ctx, s.repo.Dir(), remote, ns.Ref()); err != nil {
				return err
			}
			out.Printf("Pushed %s to %s\n", ns.Ref(), remote)
			return nil
		},
	}

	return cmd
}

func newFetchCmd() *cobra.Command {
	var hf hookFlags

	cmd := &cobra.Command{
		Use:               "fetch [remote]",
		Short:             "Fetch assignments from a remote",
		GroupID:           GroupSync,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRemotes,
		Long: `Fetch the notes ref holding assignments from a remote (default store.remote).

Only fast-forwards are accepted; diverged assignments are not merged.
Requires the notes backend.`,
		Example: `  lineage fetch
  lineage fetch upstream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ns, err := s.notesStore()
			if err != nil {
				return err
			}
			matches, env, err := hf.prepare(s.cfg, hooks.TriggerFetch)
			if err != nil {
				return err
			}
			remote := s.cfg.Store.Remote
			if len(args) > 0 {
				remote = args[0]
			}

			before, err := ns.Load(ctx)
			if err != nil {
				return err
			}
			if err := git.FetchNotes(ctx, s.repo.Dir(), remote, ns.Ref()); err != nil {
				return err
			}
			after, err := ns.Load(ctx)
			if err != nil {
				return err
			}

			added := max(len(after)-len(before), 0)
			out.Printf("Fetched %s from %s: %d new assignments\n", ns.Ref(), remote, added)
			if added > 0 {
				l.Println("Run 'lineage update' to propagate them.")
			}

			hctx := hooks.NewContext(s.repo, s.store.Name(), hooks.TriggerFetch, env)
			hctx.Assigned = added
			return hf.run(ctx, matches, hctx)
		},
	}

	hf.register(cmd)

	return cmd
}
