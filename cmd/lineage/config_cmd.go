package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/log"
	"github.com/raphi011/lineage/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage lineage configuration.

Global config: ~/.lineage/config.toml (or $LINEAGE_CONFIG)
Local config:  .lineage.toml (in the work tree root)`,
		Example: `  lineage config init          # Create default global config
  lineage config init --local  # Create local repo config
  lineage config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.lineage/config.toml.
With --local, creates per-repo config at .lineage.toml in the current work tree.`,
		Example: `  lineage config init           # Create global config
  lineage config init --local   # Create local repo config
  lineage config init -f        # Overwrite existing config
  lineage config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			content := config.DefaultGlobalConfig
			if local {
				content = config.DefaultLocalConfig
			}
			if stdout {
				out.Print(content)
				return nil
			}

			var path string
			if local {
				repo, err := git.OpenRepo(ctx, config.WorkDirFromContext(ctx))
				if err != nil {
					return err
				}
				if repo.WorkTree == "" {
					return fmt.Errorf("bare repositories have no local config: use the global config")
				}
				path = filepath.Join(repo.WorkTree, config.LocalConfigFileName)
			} else {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}

			if err := writeConfigFile(path, content, force); err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .lineage.toml instead of global config")

	return cmd
}

func writeConfigFile(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// hookJSON is the JSON form of a hook in config show.
type hookJSON struct {
	Command     string   `json:"command"`
	Description string   `json:"description,omitempty"`
	On          []string `json:"on,omitempty"`
	Enabled     bool     `json:"enabled"`
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Inside a repository the local .lineage.toml is merged over the global
config. Otherwise the global config is shown.`,
		Example: `  lineage config show
  lineage config show --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			eff := config.FromContext(ctx)
			localPath := ""
			if repo, err := git.OpenRepo(ctx, config.WorkDirFromContext(ctx)); err == nil {
				merged, err := resolveConfig(repo, eff)
				if err != nil {
					l.Warnf("failed to load local config: %v (using global config)", err)
				} else {
					eff = merged
				}
				if repo.WorkTree != "" {
					localPath = filepath.Join(repo.WorkTree, config.LocalConfigFileName)
				}
			}

			hookNames := slices.Sorted(maps.Keys(eff.Hooks.Hooks))

			if jsonOutput {
				hooksOut := make(map[string]hookJSON, len(hookNames))
				for _, name := range hookNames {
					h := eff.Hooks.Hooks[name]
					hooksOut[name] = hookJSON{Command: h.Command, Description: h.Description, On: h.On, Enabled: h.IsEnabled()}
				}
				return out.JSON(struct {
					MainBranches []string            `json:"main_branches"`
					MergePattern string              `json:"merge_pattern,omitempty"`
					RemoteRefs   bool                `json:"remote_refs"`
					Theme        string              `json:"theme"`
					Store        config.StoreConfig  `json:"store"`
					Hooks        map[string]hookJSON `json:"hooks"`
				}{eff.MainBranches, eff.MergePattern, eff.RemoteRefs, eff.Theme, eff.Store, hooksOut})
			}

			globalPath, _ := config.Path()
			out.Printf("# Global config: %s\n", globalPath)
			if localPath != "" {
				if _, err := os.Stat(localPath); err == nil {
					out.Printf("# Local config:  %s\n", localPath)
				} else {
					out.Printf("# Local config:  (none)\n")
				}
			}
			out.Println()

			if err := toml.NewEncoder(out.Writer()).Encode(eff); err != nil {
				return err
			}
			for _, name := range hookNames {
				h := eff.Hooks.Hooks[name]
				out.Printf("\n[hooks.%s]\n", name)
				out.Printf("command = %q\n", h.Command)
				if h.Description != "" {
					out.Printf("description = %q\n", h.Description)
				}
				if len(h.On) > 0 {
					out.Printf("on = [\"%s\"]\n", strings.Join(h.On, "\", \""))
				}
				if !h.IsEnabled() {
					out.Println("enabled = false")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
