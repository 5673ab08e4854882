package doctor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/log"
)

// Options configures a run.
type Options struct {
	Dir       string         // directory inside the repository
	Config    *config.Config // effective config, may be nil when ConfigErr is set
	ConfigErr error          // error from loading or resolving config
	Fix       bool
}

// Run performs all checks and applies fixes when requested. It returns an
// error only when a fix fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}
	add := func(f ...Finding) { res.Findings = append(res.Findings, f...) }

	cfg := opts.Config
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}

	add(checkGit())
	if !res.Healthy() {
		return res, nil
	}

	repo, f := checkRepo(ctx, opts.Dir)
	add(f)
	add(checkConfig(cfg, opts.ConfigErr)...)
	if f.Status == StatusError {
		return res, nil
	}
	add(checkMainline(ctx, repo, cfg))
	add(checkStore(ctx, repo, cfg)...)
	add(checkReport(ctx, repo, cfg))

	if opts.Fix {
		if err := fix(ctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func fix(ctx context.Context, res *Result) error {
	l := log.FromContext(ctx)
	for i, f := range res.Findings {
		switch f.FixAction {
		case FixRemoveReport:
			if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", f.Path, err)
			}
			l.Debug("removed report", "path", f.Path)
			res.Findings[i].Status = StatusWarn
			res.Findings[i].Description = "corrupt report removed"
			res.Findings[i].Hint = "run 'lineage update'"
			res.Findings[i].FixAction = ""
			res.Fixed++
		}
	}
	return nil
}

// Print writes the findings grouped by category, followed by a summary.
func Print(w io.Writer, res *Result) {
	byCategory := make(map[IssueCategory][]Finding)
	for _, f := range res.Findings {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	for _, cat := range Categories {
		findings := byCategory[cat]
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", cat)
		for _, f := range findings {
			fmt.Fprintf(w, "  %s %s\n", symbol(f.Status), f.Description)
			if f.Status != StatusOK && f.Hint != "" {
				fmt.Fprintf(w, "      %s\n", f.Hint)
			}
		}
	}

	s := res.Stats()
	fmt.Fprintln(w)
	if res.Fixed > 0 {
		fmt.Fprintf(w, "Fixed %d issues.\n", res.Fixed)
	}
	switch {
	case s.Errors > 0:
		fmt.Fprintf(w, "%d errors, %d warnings\n", s.Errors, s.Warnings)
	case s.Warnings > 0:
		fmt.Fprintf(w, "No errors, %d warnings\n", s.Warnings)
	default:
		fmt.Fprintln(w, "✓ No issues found")
	}
}

func symbol(s Status) string {
	switch s {
	case StatusWarn:
		return "⚠"
	case StatusError:
		return "✗"
	default:
		return "✓"
	}
}
