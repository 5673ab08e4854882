// Package config handles loading and validation of lineage configuration.
//
// # Configuration Sources (highest priority first)
//
//   - .lineage.toml in the repository work tree root (per-repo overrides)
//   - the global config file, ~/.lineage/config.toml or $LINEAGE_CONFIG
//   - default values
//
// # Key Settings
//
//   - main_branches: names that seed roots without a known branch
//   - merge_pattern: regular expression recovering merged branch names from
//     merge commit messages; must capture exactly one group per match
//   - remote_refs: also read refs/remotes/* as branch pointers
//   - theme: color theme for tables and prompts
//   - [store]: backend ("notes" or "bolt"), notes_ref and default remote
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.announce]
//	command = "echo {assigned} new assignments in {repo}"
//	description = "Report new assignments"
//	on = ["update"]
//
// Hooks with "on" run automatically after matching commands (update, set,
// resolve, fetch). Hooks without "on" never run automatically.
package config
