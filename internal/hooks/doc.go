// Package hooks runs user-defined shell commands after lineage commands.
//
// Hooks are defined in config and run after update, set, resolve or fetch,
// for example to push the notes ref or notify a channel.
//
// # Hook Selection
//
//   - Automatic: hooks whose "on" list contains the command run after it
//   - Manual: --hook=name runs a specific hook, --no-hook skips all
//
// Example config:
//
//	[hooks.share]
//	command = "git push origin refs/notes/lineage"
//	on = ["update", "resolve"]
//
//	[hooks.report]
//	command = "echo '{open} revisions need a decision in {repo}'"
//	# no "on" - only runs via --hook=report
//
// # Placeholder Substitution
//
//   - {repo}: repository folder name
//   - {repo-dir}: work tree path
//   - {store}: assignment store description
//   - {trigger}: command that triggered the hook
//   - {assigned}: number of assignments written (unquoted integer)
//   - {open}: number of revisions still unresolved or ambiguous
//   - {branch}, {revision}: the manual assignment (set, resolve)
//
// Custom variables via --arg key=value:
//
//   - {key}: value from --arg key=value
//   - {key:raw}: value without shell quoting
//   - {key:-default}: value with fallback if not provided
//
// Use --arg key=- to read piped stdin into a variable.
//
// Hooks run in the repository's work tree.
package hooks
