package config

import "maps"

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Theme is global-only and inherited by the shallow copy.
	merged := *global
	merged.mergeRe = nil

	if local.MainBranches != nil {
		merged.MainBranches = local.MainBranches
	}
	if local.MergePattern != nil {
		merged.MergePattern = *local.MergePattern
	}
	if local.RemoteRefs != nil {
		merged.RemoteRefs = *local.RemoteRefs
	}
	if local.Store.Backend != "" {
		merged.Store.Backend = local.Store.Backend
	}
	if local.Store.NotesRef != "" {
		merged.Store.NotesRef = local.Store.NotesRef
	}
	if local.Store.Remote != "" {
		merged.Store.Remote = local.Store.Remote
	}

	merged.Hooks = mergeHooks(global.Hooks, local.Hooks)
	return &merged
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}
	maps.Copy(merged.Hooks, global.Hooks)

	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}
	return merged
}
