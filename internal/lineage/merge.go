package lineage

import (
	"fmt"
	"regexp"
)

// Commit is the subset of commit data needed to recognise merges.
type Commit struct {
	Revision Revision
	Parents  []Revision
	Message  string
}

// Warning is a non-fatal configuration problem found while reading merge
// messages.
type Warning struct {
	Revision Revision
	Groups   int // non-empty capture groups in the match
}

func (w Warning) String() string {
	return fmt.Sprintf("merge pattern matched %s with %d non-empty capture groups, want exactly 1", w.Revision.Short(), w.Groups)
}

// MergePointers scans two-parent commits whose message matches pattern and
// records the captured branch name as a pointer on the second parent.
//
// A match must yield exactly one non-empty capture group. Any other match
// adds a Warning for that commit and contributes nothing.
func MergePointers(pattern *regexp.Regexp, commits []Commit, into Pointers) []Warning {
	if pattern == nil {
		return nil
	}

	var warnings []Warning
	for _, c := range commits {
		if len(c.Parents) != 2 {
			continue
		}
		m := pattern.FindStringSubmatch(c.Message)
		if m == nil {
			continue
		}

		var name string
		groups := 0
		for _, g := range m[1:] {
			if g != "" {
				name = g
				groups++
			}
		}
		if groups != 1 {
			warnings = append(warnings, Warning{Revision: c.Revision, Groups: groups})
			continue
		}
		into.Add(c.Parents[1], Branch(name))
	}
	return warnings
}
