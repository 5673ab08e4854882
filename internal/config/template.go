package config

// DefaultGlobalConfig is the template written by "lineage config init".
const DefaultGlobalConfig = `# lineage global config

# Branch names that seed a root commit when nothing else names it.
main_branches = ["master", "main", "default", "primary", "root"]

# Recover merged branch names from merge commit messages.
# The pattern must capture exactly one non-empty group per match.
# merge_pattern = "^Merge branch '([^']+)'"

# Read refs/remotes/* as branch pointers (remote prefix stripped).
remote_refs = true

# Color theme: default, none, dracula, nord
theme = "default"

[store]
# notes: git notes (shareable with push/fetch)
# bolt:  local database in .git/lineage/assignments.db
backend = "notes"
notes_ref = "refs/notes/lineage"
remote = "origin"

# Hooks run after commands listed in "on" (update, set, resolve, fetch, all).
# Placeholders: {repo} {repo-dir} {store} {trigger} {assigned} {open}
# {branch} {revision}, plus {key} for --arg key=value.
# [hooks.push-notes]
# command = "lineage push"
# description = "Share assignments after update"
# on = ["update"]
`

// DefaultLocalConfig is the template written by "lineage config init --local".
const DefaultLocalConfig = `# lineage local config (per-repo overrides)
# Place this file at the root of the work tree.
# Settings here override the global config for this repo only.

# main_branches = ["trunk"]
# merge_pattern = "^Merge pull request #\\d+ from [^/]+/(\\S+)"
# remote_refs = false

# [store]
# backend = "bolt"
# remote = "upstream"
`
