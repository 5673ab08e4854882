package lineage

import (
	"slices"
)

// Revision identifies a commit.
type Revision string

// Short returns the first seven characters of the revision id.
func (r Revision) Short() string {
	return string(r[:min(7, len(r))])
}

// Branch is a branch name in the raw encoding of the ref it came from.
type Branch string

// DefaultMainBranches are the names treated as the conventional mainline
// when a root revision has no known assignment.
var DefaultMainBranches = []Branch{"master", "main", "default", "primary", "root"}

// Pointers maps a revision to the branches whose tip it currently is.
type Pointers map[Revision][]Branch

// Add records b as pointing at rev. Returns false if the pointer was
// already present.
func (p Pointers) Add(rev Revision, b Branch) bool {
	if slices.Contains(p[rev], b) {
		return false
	}
	p[rev] = append(p[rev], b)
	return true
}

// branchSet is an unordered set of branch names.
type branchSet map[Branch]struct{}

// sorted returns the members in ascending order.
func (s branchSet) sorted() []Branch {
	out := make([]Branch, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}
