package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidBackends   = []string{BackendNotes, BackendBolt}
	ValidThemes     = []string{"default", "none", "dracula", "nord"}
	ValidHookEvents = []string{"update", "set", "resolve", "fetch", "all"}
)

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if err := validateEnum(c.Store.Backend, "store.backend", ValidBackends); err != nil {
		return err
	}
	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Store.NotesRef, "refs/notes/") || len(c.Store.NotesRef) == len("refs/notes/") {
		return fmt.Errorf("invalid store.notes_ref %q: must be a ref under refs/notes/", c.Store.NotesRef)
	}
	if len(c.MainBranches) == 0 {
		return fmt.Errorf("main_branches must not be empty")
	}
	for i, b := range c.MainBranches {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("invalid main_branches[%d]: empty name", i)
		}
	}
	if c.MergePattern != "" {
		re, err := regexp.Compile(c.MergePattern)
		if err != nil {
			return fmt.Errorf("invalid merge_pattern %q: %w", c.MergePattern, err)
		}
		if re.NumSubexp() == 0 {
			return fmt.Errorf("invalid merge_pattern %q: needs a capture group for the branch name", c.MergePattern)
		}
		c.mergeRe = re
	}
	for name, hook := range c.Hooks.Hooks {
		if hook.Command == "" && hook.IsEnabled() {
			return fmt.Errorf("hook %q: command is required", name)
		}
		for _, on := range hook.On {
			if err := validateEnum(on, "hooks."+name+".on", ValidHookEvents); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
