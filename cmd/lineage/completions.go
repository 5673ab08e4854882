package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
)

// completeHooks provides completion for hook flags
func completeHooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())
	var names []string
	for name := range cfg.Hooks.Hooks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeBranchNames completes the first argument with branch names that
// are stored or currently exist.
func completeBranchNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer s.Close()

	names, err := knownBranches(cmd.Context(), s)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeRemotes completes a remote name argument.
func completeRemotes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repo, err := git.OpenRepo(cmd.Context(), config.WorkDirFromContext(cmd.Context()))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	remotes, err := git.ListRemotes(cmd.Context(), repo.Dir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return remotes, cobra.ShellCompDirectiveNoFileComp
}
