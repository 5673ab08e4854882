package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/doctor"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose the lineage setup of a repository",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the lineage setup of the current repository.

Checks:
- git is installed
- the directory is inside a repository with a mainline branch
- global and local config are valid
- the store opens, the notes ref and store.remote exist
- the cached report is readable and current

Examples:
  lineage doctor          # Check for issues
  lineage doctor --fix    # Remove a corrupt report cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)

			opts := doctor.Options{Dir: workDir, Fix: fix}
			opts.Config, opts.ConfigErr = doctorConfig(cmd)

			res, err := doctor.Run(ctx, opts)
			if err != nil {
				return err
			}
			doctor.Print(out.Writer(), res)

			if s := res.Stats(); s.Errors > 0 {
				return fmt.Errorf("doctor found %d errors", s.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair what can be repaired")

	return cmd
}

// doctorConfig reads the global config file again, since startup only
// warns about it, and merges the local config when a repository is found.
func doctorConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	loaded, err := config.Load()
	if err != nil {
		return nil, err
	}
	global := &loaded
	if git.CheckGit() != nil {
		return global, nil
	}
	repo, err := git.OpenRepo(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return global, nil
	}
	return resolveConfig(repo, global)
}
