// Package cache keeps the report of the last inference run.
//
// The report lives in <git-dir>/lineage/report.json and records what
// "lineage update" could not decide:
//
//	{
//	  "generated_at": "2026-01-02T15:04:05Z",
//	  "store": "notes refs/notes/lineage",
//	  "assigned": 12,
//	  "unresolved_roots": ["3f2c..."],
//	  "unresolved_leaves": [],
//	  "ambiguous": [{"revision": "a91e...", "candidates": ["feature/x", "fix"]}],
//	  "warnings": ["9b0d...: merge pattern captured 2 groups"],
//	  "tips": {"refs/heads/main": "c0ff..."}
//	}
//
// "lineage status" and "lineage resolve" read it instead of re-running
// inference. Tips snapshot the branch refs at generation time so readers
// can tell when the report no longer matches the repository.
//
// # Concurrency
//
// [Save] and [Update] hold an exclusive flock on report.lock while
// writing. The JSON file is replaced atomically.
package cache
