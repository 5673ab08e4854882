package main

import (
	"maps"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		branch     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List stored assignments",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Example: `  lineage list
  lineage list --branch feature/login
  lineage list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			known, err := s.store.Load(ctx)
			if err != nil {
				return err
			}
			if branch != "" {
				maps.DeleteFunc(known, func(_ lineage.Revision, b lineage.Branch) bool {
					return string(b) != branch
				})
			}

			rows := assignmentRows(known)
			if jsonOutput {
				results := make([]revisionBranch, len(rows))
				for i, r := range rows {
					results[i] = revisionBranch{Revision: r.Revision, Branch: r.Branch}
				}
				return out.JSON(results)
			}

			if len(rows) == 0 {
				l.Println("No assignments stored")
				return nil
			}
			out.Styled(static.AssignmentTable(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Only list commits of this branch")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.RegisterFlagCompletionFunc("branch", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeBranchNames(cmd, nil, toComplete)
	})

	return cmd
}
