package lineage

import (
	"fmt"
	"slices"
	"strings"
)

// Input is one snapshot of everything inference needs.
type Input struct {
	Tree     *Tree
	Known    map[Revision]Branch
	Pointers Pointers

	// MainBranches names the conventional mainline branches used to seed
	// roots without a known assignment. Nil means [DefaultMainBranches].
	MainBranches []Branch
}

// Outcome is the result of one inference run.
type Outcome struct {
	// Assigned holds revisions resolved by this run. Known revisions are
	// never repeated here.
	Assigned map[Revision]Branch

	// UnresolvedRoots are roots with neither a known assignment nor a
	// single mainline pointer anywhere below them. Their subtrees are
	// skipped.
	UnresolvedRoots []Revision

	// UnresolvedLeaves are revisions without children and without a
	// direct pointer.
	UnresolvedLeaves []Revision

	// Ambiguous maps revisions to the sorted candidates inference could not
	// choose between. Every entry has at least two candidates.
	Ambiguous map[Revision][]Branch
}

// Empty reports whether the run neither assigned nor flagged anything.
func (o *Outcome) Empty() bool {
	return len(o.Assigned) == 0 && len(o.UnresolvedRoots) == 0 &&
		len(o.UnresolvedLeaves) == 0 && len(o.Ambiguous) == 0
}

type resultKind uint8

const (
	unresolved resultKind = iota
	resolved
	ambiguous
)

// result is what a subtree reports to its parent.
type result struct {
	kind   resultKind
	branch Branch    // set when resolved
	set    branchSet // set when ambiguous
}

func (r result) String() string {
	switch r.kind {
	case resolved:
		return "{" + string(r.branch) + "}"
	case ambiguous:
		names := r.set.sorted()
		parts := make([]string, len(names))
		for i, b := range names {
			parts[i] = string(b)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "{}"
	}
}

// frame is one pending revision on the traversal stack.
type frame struct {
	rev      Revision
	expected Branch
	known    bool
	next     int      // index of the next child to visit
	results  []result // children results, aligned with Children[rev]
}

type engine struct {
	tree     *Tree
	known    map[Revision]Branch
	pointers Pointers
	main     map[Branch]bool
	out      *Outcome
}

// Infer labels every revision of in.Tree that can be decided from known
// assignments and branch pointers.
//
// Each root is seeded with its known branch, or with the single mainline
// name pointed at from anywhere in its subtree. The subtree is then walked
// top-down. A revision without a known branch takes the inherited branch
// whenever one of its candidate sets is exactly that branch, otherwise the
// union of its candidates if that is a single branch. Larger unions travel
// upward unassigned and are reported as ambiguous by the first ancestor
// that settles on a branch.
func Infer(in Input) (*Outcome, error) {
	mainNames := in.MainBranches
	if mainNames == nil {
		mainNames = DefaultMainBranches
	}
	e := &engine{
		tree:     in.Tree,
		known:    in.Known,
		pointers: in.Pointers,
		main:     make(map[Branch]bool, len(mainNames)),
		out: &Outcome{
			Assigned:  make(map[Revision]Branch),
			Ambiguous: make(map[Revision][]Branch),
		},
	}
	for _, b := range mainNames {
		e.main[b] = true
	}

	for _, root := range e.tree.Roots {
		rootBranch, ok := e.known[root]
		if !ok {
			rootBranch, ok = e.mainlineBelow(root)
			if !ok {
				e.out.UnresolvedRoots = append(e.out.UnresolvedRoots, root)
				continue
			}
			e.out.Assigned[root] = rootBranch
		}

		res := e.walk(root, rootBranch)
		if res.kind != resolved || res.branch != rootBranch {
			return nil, &InvariantError{Root: root, Want: rootBranch, Result: res.String()}
		}
	}

	return e.out, nil
}

// mainlineBelow scans the whole subtree of root for pointers carrying a
// mainline name. It succeeds only if exactly one distinct name is found.
func (e *engine) mainlineBelow(root Revision) (Branch, bool) {
	var found Branch
	stack := []Revision{root}
	for len(stack) > 0 {
		rev := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, b := range e.pointers[rev] {
			if !e.main[b] {
				continue
			}
			if found != "" && found != b {
				return "", false
			}
			found = b
		}
		stack = append(stack, e.tree.Children[rev]...)
	}
	return found, found != ""
}

// walk runs the top-down propagation for the subtree of root, treating
// root as known to be rootBranch, and returns root's result.
func (e *engine) walk(root Revision, rootBranch Branch) result {
	stack := []*frame{{rev: root, expected: rootBranch, known: true}}

	for {
		f := stack[len(stack)-1]
		children := e.tree.Children[f.rev]

		if f.next < len(children) {
			child := children[f.next]
			f.next++
			stack = append(stack, e.enter(child, f.expected))
			continue
		}

		res := e.leave(f, children)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return res
		}

		parent := stack[len(stack)-1]
		if parent.known {
			// Below an anchor an ambiguous child is final.
			if res.kind == ambiguous {
				e.out.Ambiguous[f.rev] = res.set.sorted()
			}
			continue
		}
		parent.results = append(parent.results, res)
	}
}

// enter creates the frame for rev inheriting expected from its parent.
func (e *engine) enter(rev Revision, expected Branch) *frame {
	if b, ok := e.known[rev]; ok {
		return &frame{rev: rev, expected: b, known: true}
	}
	return &frame{rev: rev, expected: expected}
}

// leave combines the children results of f once all of them are in.
func (e *engine) leave(f *frame, children []Revision) result {
	if f.known {
		return result{kind: resolved, branch: f.expected}
	}

	pointers := e.pointers[f.rev]
	if len(f.results) == 0 && len(pointers) == 0 {
		e.out.UnresolvedLeaves = append(e.out.UnresolvedLeaves, f.rev)
		return result{kind: unresolved}
	}

	if e.offersExpected(f, pointers) {
		e.out.Assigned[f.rev] = f.expected
		for i, res := range f.results {
			if res.kind == ambiguous {
				e.out.Ambiguous[children[i]] = res.set.sorted()
			}
		}
		return result{kind: resolved, branch: f.expected}
	}

	union := make(branchSet)
	for _, res := range f.results {
		switch res.kind {
		case unresolved:
			return result{kind: unresolved}
		case resolved:
			union[res.branch] = struct{}{}
		case ambiguous:
			for b := range res.set {
				union[b] = struct{}{}
			}
		}
	}
	for _, b := range pointers {
		union[b] = struct{}{}
	}

	if len(union) == 1 {
		for b := range union {
			e.out.Assigned[f.rev] = b
			return result{kind: resolved, branch: b}
		}
	}
	return result{kind: ambiguous, set: union}
}

// offersExpected reports whether {f.expected} is literally one of the
// candidate sets of f.
func (e *engine) offersExpected(f *frame, pointers []Branch) bool {
	if slices.Contains(pointers, f.expected) {
		return true
	}
	for _, res := range f.results {
		if res.kind == resolved && res.branch == f.expected {
			return true
		}
	}
	return false
}

// Summary renders a one-line description of the outcome.
func (o *Outcome) Summary() string {
	return fmt.Sprintf("%d assigned, %d unresolved roots, %d unresolved leaves, %d ambiguous",
		len(o.Assigned), len(o.UnresolvedRoots), len(o.UnresolvedLeaves), len(o.Ambiguous))
}
