package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/log"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Trigger identifies which command is triggering the hook
type Trigger string

const (
	TriggerUpdate  Trigger = "update"
	TriggerSet     Trigger = "set"
	TriggerResolve Trigger = "resolve"
	TriggerFetch   Trigger = "fetch"
)

// Context holds the values for placeholder substitution
type Context struct {
	Repo     string            // repository folder name
	RepoDir  string            // work tree (or bare git dir); hooks run here
	Store    string            // store description, e.g. "notes refs/notes/lineage"
	Trigger  Trigger           // command that triggered the hook
	Assigned int               // assignments written by the command
	Open     int               // revisions still unresolved or ambiguous
	Branch   string            // branch set manually (set, resolve)
	Revision string            // revision set manually (set)
	Env      map[string]string // custom variables from --arg key=value flags
	DryRun   bool              // if true, print command instead of executing
}

// NewContext builds a Context for repo.
func NewContext(repo git.Repo, storeName string, trigger Trigger, env map[string]string) Context {
	return Context{
		Repo:    repo.Name(),
		RepoDir: repo.Dir(),
		Store:   storeName,
		Trigger: trigger,
		Env:     env,
	}
}

// HookMatch represents a hook that matched the current command
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs. Otherwise, all enabled
// hooks whose "on" list contains trigger run, sorted by name.
// Returns an error if the named hook doesn't exist.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, trigger Trigger) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	// explicit hook ignores "on"
	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: &hook, Name: hookName}}, nil
	}

	return findMatchingHooks(cfg, trigger), nil
}

// findMatchingHooks returns all enabled hooks that have trigger in their
// "on" list. Hooks without "on" only run when named explicitly.
func findMatchingHooks(cfg config.HooksConfig, trigger Trigger) []HookMatch {
	var matches []HookMatch

	for name, hook := range cfg.Hooks {
		if !hook.IsEnabled() || !hookMatches(hook, trigger) {
			continue
		}
		hookCopy := hook
		matches = append(matches, HookMatch{Hook: &hookCopy, Name: name})
	}

	slices.SortFunc(matches, func(a, b HookMatch) int { return strings.Compare(a.Name, b.Name) })
	return matches
}

// hookMatches returns true if trigger is in the hook's "on" list.
// Special value "all" matches every trigger.
func hookMatches(hook config.Hook, trigger Trigger) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// RunAll runs all matched hooks in order and stops at the first failure.
func RunAll(ctx context.Context, matches []HookMatch, hctx Context) error {
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx); err != nil {
			return fmt.Errorf("hook %q failed: %w", match.Name, err)
		}
	}
	return nil
}

// RunAllNonFatal runs all matched hooks, logging failures as warnings.
func RunAllNonFatal(ctx context.Context, matches []HookMatch, hctx Context) {
	l := log.FromContext(ctx)
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx); err != nil {
			l.Warnf("hook %q failed: %v", match.Name, err)
		}
	}
}

// runHook executes a single hook with variable substitution.
func runHook(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(hook.Command, hctx)

	if hctx.DryRun {
		l.Printf("[dry-run] %s: %s\n", name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", name)

	shellCmd := exec.CommandContext(ctx, "sh", "-c", command)
	shellCmd.Dir = hctx.RepoDir
	shellCmd.Stdout = os.Stdout
	shellCmd.Stderr = os.Stderr
	shellCmd.Stdin = os.Stdin

	if err := shellCmd.Run(); err != nil {
		return err
	}

	if hook.Description != "" {
		l.Printf("  ✓ %s\n", hook.Description)
	}
	return nil
}

// readStdinIfPiped reads all content from stdin if it's piped (not a TTY).
// Returns empty string and nil if stdin is a TTY (interactive).
func readStdinIfPiped(stdin *os.File) (string, error) {
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseEnv parses "key=value" strings into a map.
// A value of "-" reads piped stdin once and assigns it to every such key.
func ParseEnv(envSlice []string, stdin *os.File) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid env format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}

	if len(stdinKeys) > 0 {
		content, err := readStdinIfPiped(stdin)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns for env variables.
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
//
// Static placeholders: {repo}, {repo-dir}, {store}, {trigger}, {assigned},
// {open}, {branch}, {revision}. Anything else is looked up in Context.Env.
func SubstitutePlaceholders(command string, hctx Context) string {
	replacements := map[string]string{
		"{repo}":     shellQuote(hctx.Repo),
		"{repo-dir}": shellQuote(hctx.RepoDir),
		"{store}":    shellQuote(hctx.Store),
		"{trigger}":  shellQuote(string(hctx.Trigger)),
		"{assigned}": strconv.Itoa(hctx.Assigned),
		"{open}":     strconv.Itoa(hctx.Open),
		"{branch}":   shellQuote(hctx.Branch),
		"{revision}": shellQuote(hctx.Revision),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		if val, ok := hctx.Env[key]; ok {
			if isRaw {
				return val
			}
			return shellQuote(val)
		}

		if isRaw {
			return defaultVal
		}
		return shellQuote(defaultVal)
	})
}
