// Package store persists branch assignments.
//
// Two backends implement [Store]:
//
//   - [NotesStore] keeps one git note per commit under a notes ref
//     (default refs/notes/lineage), so assignments travel with push/fetch
//   - [BoltStore] keeps a bbolt database in <git-dir>/lineage, for
//     repositories where notes are unwanted
//
// Stored assignments are ground truth for inference. [Store.Add] never
// replaces an existing entry; only [Store.Set] with force does.
package store
