package lineage

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is matched by [CycleError].
	ErrCycle = errors.New("cycle in revision graph")

	// ErrInvalidParent is matched by [InvalidParentError].
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvariant is matched by [InvariantError].
	ErrInvariant = errors.New("internal invariant violated")
)

// CycleError reports a node that was reached again while still being
// visited.
type CycleError struct {
	Node any
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected at %v", e.Node)
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// InvalidParentError reports a revision listed as its own first parent.
type InvalidParentError struct {
	Revision Revision
}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf("revision %s is its own parent", e.Revision)
}

func (e *InvalidParentError) Is(target error) bool {
	return target == ErrInvalidParent
}

// InvariantError reports a root whose inferred result disagrees with the
// branch it was seeded with.
type InvariantError struct {
	Root   Revision
	Want   Branch
	Result string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("root %s: expected {%s}, traversal returned %s", e.Root, e.Want, e.Result)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
