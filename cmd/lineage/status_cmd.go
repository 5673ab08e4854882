package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/output"
	"github.com/raphi011/lineage/internal/ui/static"
	"github.com/raphi011/lineage/internal/update"
)

// statusJSON is the JSON form of status.
type statusJSON struct {
	*cache.Report
	Stale bool `json:"stale"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show commits that still need a branch",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show the result of the last 'lineage update'.

Lists unresolved roots (no mainline branch below them), unresolved leaves
(commits without children or branch ref) and ambiguous commits with their
candidate branches, plus merge messages the merge_pattern could not read.
The report is flagged stale when branch refs moved since it was written.`,
		Example: `  lineage status
  lineage status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			repo, cfg, err := openRepo(ctx)
			if err != nil {
				return err
			}
			s := &session{repo: repo, cfg: cfg}

			r, stale, err := loadReport(ctx, s)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(statusJSON{Report: r, Stale: stale})
			}
			out.Styled(static.RenderReport(r, stale, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// loadReport reads the cached report and compares it with the branch refs.
func loadReport(ctx context.Context, s *session) (*cache.Report, bool, error) {
	r, err := cache.Load(s.stateDir())
	if err != nil {
		return nil, false, err
	}
	tips, err := update.Tips(ctx, s.repo, s.cfg.RemoteRefs)
	if err != nil {
		return nil, false, err
	}
	return r, r.IsStale(tips), nil
}
