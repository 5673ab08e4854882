// Package lineage infers a permanent branch name for every revision of a
// history.
//
// The package is pure: it performs no I/O and keeps no state between runs.
// Callers load a history snapshot, hand it over as plain maps and persist
// whatever [Infer] returns.
//
// # Pipeline
//
//   - [TopoSort]: orders revisions after their parents, rejecting cycles
//   - [BuildTree]: derives the first-parent forest ([Tree])
//   - [MergePointers]: optionally adds branch pointers recovered from merge
//     commit messages
//   - [Infer]: propagates known assignments and pointers through the forest
//
// # Outcomes
//
// [Infer] labels every revision it can decide and reports the rest as
// unresolved roots, unresolved leaves or ambiguous revisions. Those are
// results for a human to act on, not errors. Only malformed input (cycles,
// self parents) or a broken internal invariant fails a run.
package lineage
