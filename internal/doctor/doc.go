// Package doctor diagnoses a repository's lineage setup.
//
// Checks run in order and later checks are skipped when an earlier one
// makes them meaningless (no git, no repository):
//
//   - [CategoryTools]: git is installed
//   - [CategoryRepo]: the directory is inside a git repository with a
//     mainline branch
//   - [CategoryConfig]: global and local config parse and validate
//   - [CategoryStore]: the configured store opens and loads, the notes ref
//     and its remote exist
//   - [CategoryReport]: the cached report exists, parses and is current
//
// With fix enabled, a corrupt report cache is removed so the next
// "lineage update" rewrites it.
package doctor
