package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Hook defines a command run after a lineage command.
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"` // commands this hook runs after
	Enabled     *bool    `toml:"enabled"`
}

// IsEnabled reports whether the hook is enabled (default true).
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// StoreConfig selects where assignments are persisted.
type StoreConfig struct {
	Backend  string `toml:"backend" json:"backend"`     // "notes" or "bolt"
	NotesRef string `toml:"notes_ref" json:"notes_ref"` // full ref name under refs/notes/
	Remote   string `toml:"remote" json:"remote"`       // default remote for push/fetch
}

// Config holds the lineage configuration
type Config struct {
	MainBranches []string    `toml:"main_branches"`
	MergePattern string      `toml:"merge_pattern"`
	RemoteRefs   bool        `toml:"remote_refs"`
	Theme        string      `toml:"theme"`
	Store        StoreConfig `toml:"store"`
	Hooks        HooksConfig `toml:"-"` // custom parsing needed

	mergeRe *regexp.Regexp
}

const (
	// DefaultNotesRef is where assignments are kept in git notes.
	DefaultNotesRef = "refs/notes/lineage"

	// BackendNotes stores assignments as git notes.
	BackendNotes = "notes"

	// BackendBolt stores assignments in a bbolt file inside the git dir.
	BackendBolt = "bolt"

	// EnvConfigPath overrides the global config location.
	EnvConfigPath = "LINEAGE_CONFIG"
)

// DefaultMainBranches mirrors the engine's default mainline names.
var DefaultMainBranches = []string{"master", "main", "default", "primary", "root"}

// Default returns the default configuration
func Default() Config {
	return Config{
		MainBranches: append([]string(nil), DefaultMainBranches...),
		RemoteRefs:   true,
		Theme:        "default",
		Store: StoreConfig{
			Backend:  BackendNotes,
			NotesRef: DefaultNotesRef,
			Remote:   "origin",
		},
		Hooks: HooksConfig{Hooks: map[string]Hook{}},
	}
}

// MergeRegexp returns the compiled merge pattern, or nil when none is
// configured.
func (c *Config) MergeRegexp() *regexp.Regexp {
	if c.MergePattern == "" {
		return nil
	}
	if c.mergeRe == nil || c.mergeRe.String() != c.MergePattern {
		// Validate has already proven the pattern compiles.
		c.mergeRe = regexp.MustCompile(c.MergePattern)
	}
	return c.mergeRe
}

// Path returns the path to the global config file.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lineage", "config.toml"), nil
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	MainBranches []string       `toml:"main_branches"`
	MergePattern string         `toml:"merge_pattern"`
	RemoteRefs   *bool          `toml:"remote_refs"`
	Theme        string         `toml:"theme"`
	Store        StoreConfig    `toml:"store"`
	Hooks        map[string]any `toml:"hooks"`
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path, applying defaults for unset values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if raw.MainBranches != nil {
		cfg.MainBranches = raw.MainBranches
	}
	cfg.MergePattern = raw.MergePattern
	if raw.RemoteRefs != nil {
		cfg.RemoteRefs = *raw.RemoteRefs
	}
	if raw.Theme != "" {
		cfg.Theme = raw.Theme
	}
	if raw.Store.Backend != "" {
		cfg.Store.Backend = raw.Store.Backend
	}
	if raw.Store.NotesRef != "" {
		cfg.Store.NotesRef = raw.Store.NotesRef
	}
	if raw.Store.Remote != "" {
		cfg.Store.Remote = raw.Store.Remote
	}
	cfg.Hooks = parseHooksConfig(raw.Hooks)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for name, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		hc.Hooks[name] = hook
	}

	return hc
}

type ctxKey struct{}

// WithConfig attaches the effective config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

type workDirKey struct{}

// WithWorkDir attaches the directory commands operate in.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the attached directory, or "." if none.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	return "."
}
