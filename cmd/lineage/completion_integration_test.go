//go:build integration

package main

import (
	"strings"
	"testing"
)

// TestCompletion_Shells tests completion script generation.
//
// Scenario: User runs `lineage completion <shell>`
// Expected: a non-empty script for every supported shell, error otherwise
func TestCompletion_Shells(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			ctx, out := testContext(t, nil, t.TempDir())
			runCmd(t, ctx, newCompletionCmd, shell)
			if !strings.Contains(out.String(), "completion") {
				t.Errorf("%s script looks empty", shell)
			}
		})
	}

	ctx, _ := testContext(t, nil, t.TempDir())
	if err := execCmd(ctx, newCompletionCmd, "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
