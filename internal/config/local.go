package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file in the work tree root.
const LocalConfigFileName = ".lineage.toml"

// LocalConfig holds per-repo overrides from .lineage.toml.
// Nil slices, nil pointers and empty strings mean "inherit from global".
type LocalConfig struct {
	MainBranches []string    `toml:"main_branches"`
	MergePattern *string     `toml:"merge_pattern"`
	RemoteRefs   *bool       `toml:"remote_refs"`
	Store        StoreConfig `toml:"store"`
	Hooks        HooksConfig `toml:"-"` // merged by name into global
}

type rawLocalConfig struct {
	MainBranches []string       `toml:"main_branches"`
	MergePattern *string        `toml:"merge_pattern"`
	RemoteRefs   *bool          `toml:"remote_refs"`
	Store        StoreConfig    `toml:"store"`
	Hooks        map[string]any `toml:"hooks"`
}

// LoadLocal reads .lineage.toml from the given work tree root.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var raw rawLocalConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	return &LocalConfig{
		MainBranches: raw.MainBranches,
		MergePattern: raw.MergePattern,
		RemoteRefs:   raw.RemoteRefs,
		Store:        raw.Store,
		Hooks:        parseHooksConfig(raw.Hooks),
	}, nil
}

// Resolve loads the local config of repoPath, merges it over global and
// validates the result.
func Resolve(global *Config, repoPath string) (*Config, error) {
	local, err := LoadLocal(repoPath)
	if err != nil {
		return nil, err
	}
	merged := MergeLocal(global, local)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", LocalConfigFileName, err)
	}
	return merged, nil
}
