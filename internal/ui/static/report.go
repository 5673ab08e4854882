package static

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/ui/styles"
)

// RenderReport renders the cached report as sections. Empty sections are
// omitted. stale marks reports older than the current branch refs.
func RenderReport(r *cache.Report, stale bool, now time.Time) string {
	var b strings.Builder

	age := now.Sub(r.GeneratedAt).Truncate(time.Second)
	fmt.Fprintf(&b, "%s %s\n", styles.Bold.Render("Last update"),
		styles.MutedStyle.Render(fmt.Sprintf("%s ago, %s", age, r.Store)))
	if stale {
		fmt.Fprintf(&b, "%s\n", styles.WarningStyle.Render(styles.SymbolWarning+" branches moved since, run 'lineage update'"))
	}
	fmt.Fprintf(&b, "%s %d assigned\n", styles.SuccessStyle.Render(styles.SymbolAssigned), r.Assigned)

	section := func(symbol, title string, n int) {
		fmt.Fprintf(&b, "\n%s %s\n", symbol, styles.HeaderStyle.Render(fmt.Sprintf("%s (%d)", title, n)))
	}

	if n := len(r.UnresolvedRoots); n > 0 {
		section(styles.SymbolUnresolved, "Unresolved roots", n)
		b.WriteString(revisionList(r.UnresolvedRoots))
	}
	if n := len(r.UnresolvedLeaves); n > 0 {
		section(styles.SymbolUnresolved, "Unresolved leaves", n)
		b.WriteString(revisionList(r.UnresolvedLeaves))
	}
	if n := len(r.Ambiguous); n > 0 {
		section(styles.WarningStyle.Render(styles.SymbolAmbiguous), "Ambiguous", n)
		rows := make([][]string, n)
		for i, a := range r.Ambiguous {
			names := make([]string, len(a.Candidates))
			for j, c := range a.Candidates {
				names[j] = styles.Branch(c)
			}
			rows[i] = []string{styles.Revision(a.Revision), strings.Join(names, ", ")}
		}
		b.WriteString(RenderTable([]string{"REVISION", "CANDIDATES"}, rows))
	}
	if n := len(r.Warnings); n > 0 {
		section(styles.WarningStyle.Render(styles.SymbolWarning), "Warnings", n)
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  %s\n", w)
		}
	}

	if r.Open() == 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.SuccessStyle.Render("Nothing left to resolve"))
	}
	return b.String()
}

func revisionList(revs []string) string {
	var b strings.Builder
	for _, rev := range revs {
		fmt.Fprintf(&b, "  %s\n", styles.Revision(rev))
	}
	return b.String()
}
