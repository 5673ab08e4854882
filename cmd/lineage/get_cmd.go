package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/ui/static"
)

// revisionBranch is the JSON form of one lookup.
type revisionBranch struct {
	Revision string `json:"revision"`
	Branch   string `json:"branch,omitempty"`
}

func newGetCmd() *cobra.Command {
	var (
		copyFlag   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "get [revision...]",
		Short:   "Show the stored branch of commits",
		GroupID: GroupCore,
		Long: `Show the branch stored for one or more commits (default HEAD).

With a single revision only the branch name is printed, which makes the
command usable in scripts. Revisions without an assignment are an error
for a single revision and shown as "?" in the table otherwise.`,
		Example: `  lineage get                  # Branch of HEAD
  lineage get HEAD~3 v1.2.0    # Several revisions
  lineage get --copy           # Copy HEAD's branch to the clipboard
  lineage get --json abc1234`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
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
			known, err := s.store.Load(ctx)
			if err != nil {
				return err
			}

			results := make([]revisionBranch, len(revs))
			for i, rev := range revs {
				results[i] = revisionBranch{Revision: string(rev), Branch: string(known[rev])}
			}

			if len(results) == 1 && results[0].Branch == "" && !jsonOutput {
				return fmt.Errorf("%s has no branch assignment: run 'lineage update' or 'lineage set'", revs[0].Short())
			}

			if copyFlag {
				var names []string
				for _, r := range results {
					if r.Branch != "" {
						names = append(names, r.Branch)
					}
				}
				if err := clipboard.WriteAll(strings.Join(names, "\n")); err != nil {
					l.Warnf("failed to copy to clipboard: %v", err)
				}
			}

			if jsonOutput {
				return out.JSON(results)
			}
			if len(results) == 1 {
				out.Println(results[0].Branch)
				return nil
			}

			rows := make([]static.Assignment, len(results))
			for i, r := range results {
				rows[i] = static.Assignment{Revision: r.Revision, Branch: r.Branch}
				if r.Branch == "" {
					rows[i].Branch = "?"
				}
			}
			out.Styled(static.AssignmentTable(rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the branch name to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
