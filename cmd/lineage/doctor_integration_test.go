//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDoctor_HealthyAfterUpdate tests doctor on a set up repository.
//
// Scenario: User runs `lineage update` then `lineage doctor`
// Expected: no errors, report is current
func TestDoctor_HealthyAfterUpdate(t *testing.T) {
	r := setupMergedFeature(t)
	t.Setenv("LINEAGE_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	ctx, out := testContext(t, nil, r.path)

	runCmd(t, ctx, newUpdateCmd)
	out.Reset()
	runCmd(t, ctx, newDoctorCmd)
	if !strings.Contains(out.String(), "report is current") {
		t.Errorf("unexpected doctor output:\n%s", out.String())
	}
}

// TestDoctor_InvalidGlobalConfig tests that doctor reports a broken config file.
//
// Scenario: Global config has an unknown backend
// Expected: doctor fails with a config error
func TestDoctor_InvalidGlobalConfig(t *testing.T) {
	r := setupTestRepo(t)
	r.commitAs("only")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\nbackend = \"sql\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LINEAGE_CONFIG", path)
	ctx, out := testContext(t, nil, r.path)

	if err := execCmd(ctx, newDoctorCmd); err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out.String(), "store.backend") {
		t.Errorf("doctor output missing config error:\n%s", out.String())
	}
}
