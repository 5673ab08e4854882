package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// RenderMarkdown writes one section per command with a row per test.
func RenderMarkdown(w io.Writer, tests []TestFunc) error {
	byCommand := make(map[string][]TestFunc)
	for _, t := range tests {
		cmd := commandOf(t.Name)
		byCommand[cmd] = append(byCommand[cmd], t)
	}
	commands := slices.Sorted(maps.Keys(byCommand))

	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n|---------|-------|\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), len(byCommand[cmd]))
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", len(tests))

	for _, cmd := range commands {
		fmt.Fprintf(w, "## %s\n\n", cmd)
		fmt.Fprintf(w, "| Test | Scenario | Expected |\n|------|----------|----------|\n")
		for _, t := range byCommand[cmd] {
			scenario := t.Scenario
			if scenario == "" {
				scenario = t.Summary
			}
			if scenario == "" {
				scenario = "_No documentation_"
			}
			fmt.Fprintf(w, "| `%s` | %s | %s |\n", t.Name, escape(scenario), escape(t.Expected))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// commandOf maps a test name to the command it covers:
// TestConfigInit_Local -> "lineage config", TestUpdate_DryRun -> "lineage update".
func commandOf(testName string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(testName, "Test"), "_")
	// first camel-case word
	end := len(name)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			end = i
			break
		}
	}
	if end == 0 {
		return "other"
	}
	return "lineage " + strings.ToLower(name[:end])
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// toAnchor converts a heading to its markdown anchor.
func toAnchor(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
