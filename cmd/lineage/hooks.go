package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/hooks"
)

// hookFlags are the hook options shared by commands that write assignments.
type hookFlags struct {
	name   string
	noHook bool
	env    []string
}

func (f *hookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "hook", "", "Run the named hook instead of the configured ones")
	cmd.Flags().BoolVar(&f.noHook, "no-hook", false, "Skip hooks")
	cmd.Flags().StringSliceVarP(&f.env, "arg", "a", nil, "Set hook variable KEY=VALUE (KEY=- reads stdin)")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.RegisterFlagCompletionFunc("hook", completeHooks)
}

// prepare selects the hooks and parses --arg before any work is done, so
// bad flags fail early.
func (f *hookFlags) prepare(cfg *config.Config, trigger hooks.Trigger) ([]hooks.HookMatch, map[string]string, error) {
	matches, err := hooks.SelectHooks(cfg.Hooks, f.name, f.noHook, trigger)
	if err != nil {
		return nil, nil, err
	}
	env, err := hooks.ParseEnv(f.env, os.Stdin)
	if err != nil {
		return nil, nil, err
	}
	return matches, env, nil
}

// run runs matches after a successful write. An explicitly named hook
// is fatal on failure; configured hooks only warn.
func (f *hookFlags) run(ctx context.Context, matches []hooks.HookMatch, hctx hooks.Context) error {
	if len(matches) == 0 {
		return nil
	}
	if f.name != "" {
		return hooks.RunAll(ctx, matches, hctx)
	}
	hooks.RunAllNonFatal(ctx, matches, hctx)
	return nil
}
