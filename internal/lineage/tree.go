package lineage

// Tree is the first-parent forest of a history.
type Tree struct {
	// Roots are revisions without a first parent, in input order.
	Roots []Revision
	// Children maps a revision to the revisions whose first parent it is,
	// in input order.
	Children map[Revision][]Revision
}

// Len returns the number of revisions reachable from the roots.
func (t *Tree) Len() int {
	n := 0
	stack := append([]Revision(nil), t.Roots...)
	for len(stack) > 0 {
		rev := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, t.Children[rev]...)
	}
	return n
}

// FirstParents reduces a full parent relation to its first-parent edges.
func FirstParents(parents map[Revision][]Revision) map[Revision]Revision {
	fp := make(map[Revision]Revision, len(parents))
	for rev, ps := range parents {
		if len(ps) > 0 {
			fp[rev] = ps[0]
		}
	}
	return fp
}

// BuildTree derives the children map and roots from a first-parent
// relation. Revisions missing from firstParent, or whose first parent is
// not part of revisions, become roots.
func BuildTree(revisions []Revision, firstParent map[Revision]Revision) (*Tree, error) {
	known := make(map[Revision]bool, len(revisions))
	for _, rev := range revisions {
		known[rev] = true
	}

	t := &Tree{Children: make(map[Revision][]Revision)}
	seen := make(map[Revision]bool, len(revisions))
	for _, rev := range revisions {
		if seen[rev] {
			continue
		}
		seen[rev] = true

		parent, ok := firstParent[rev]
		if ok && parent == rev {
			return nil, &InvalidParentError{Revision: rev}
		}
		if !ok || !known[parent] {
			t.Roots = append(t.Roots, rev)
			continue
		}
		t.Children[parent] = append(t.Children[parent], rev)
	}

	return t, nil
}
