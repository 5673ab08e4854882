// Package git reads history snapshots from and writes branch notes to a git
// repository via shell commands.
//
// All operations call the git CLI through [github.com/raphi011/lineage/internal/cmd]
// rather than a Go git library, so user configuration (credential helpers,
// SSH keys, aliases, alternates) keeps working.
//
// # History
//
//   - [LoadHistory]: every commit reachable from branches, tags, HEAD and
//     optionally remote-tracking refs, with its parents
//   - [LoadMergeMessages]: messages of merge commits for pattern matching
//   - [ListBranchPointers]: branch refs and the commits they point at
//
// # Notes
//
// Assignments live as one note per commit under a notes ref:
//
//   - [ReadNotes]: all notes of a ref via "git cat-file --batch"
//   - [AddNotes]: bulk add through "git fast-import" in a single commit
//   - [SetNote], [RemoveNote]: single edits via "git notes"
//   - [PushNotes], [FetchNotes]: fast-forward exchange with a remote
package git
